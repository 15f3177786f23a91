package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schema constrains a loaded configuration after defaults are applied.
const schema = `
server: {
	listen:        string & =~":[0-9]+$"
	"grpc-listen": "" | string & =~":[0-9]+$"
}
catalog: {
	driver: "sqlite" | "duckdb"
	path:   string & !=""
}
log: {
	verbosity: int & >=0 & <=2
}
`

// Validate checks the configuration against the schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	sv := ctx.CompileString(schema)
	if err := sv.Err(); err != nil {
		return fmt.Errorf("config: compile schema: %w", err)
	}

	cv := ctx.Encode(c)
	if err := cv.Err(); err != nil {
		return fmt.Errorf("config: encode configuration: %w", err)
	}

	if err := sv.Unify(cv).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
