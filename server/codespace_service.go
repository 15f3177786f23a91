// Package server exposes the codespace and transcoding operations as
// connect RPC services, with an optional gRPC bridge and an LSP frontend.
package server

import (
	"context"

	"connectrpc.com/connect"

	"github.com/zerustech/string/catalog"
	"github.com/zerustech/string/codespace"
	"github.com/zerustech/string/inspect"
)

// ---------------------------------------------------------------------------
// Procedure paths
// ---------------------------------------------------------------------------
//
// Paths follow the connect convention /<package>.<Service>/<Method>.

const (
	CodespaceCountsProcedure            = "/zerus.v1.CodespaceService/Counts"
	CodespaceGetPlaneProcedure          = "/zerus.v1.CodespaceService/GetPlane"
	CodespaceListPlanesProcedure        = "/zerus.v1.CodespaceService/ListPlanes"
	CodespaceListNoncharactersProcedure = "/zerus.v1.CodespaceService/ListNoncharacters"
	CodespaceInspectProcedure           = "/zerus.v1.CodespaceService/Inspect"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type CountsRequest struct{}

type CountsResponse struct {
	CodePoints      int64 `json:"code_points" cbor:"1,keyasint"`
	HighSurrogates  int64 `json:"high_surrogates" cbor:"2,keyasint"`
	LowSurrogates   int64 `json:"low_surrogates" cbor:"3,keyasint"`
	ValidCodePoints int64 `json:"valid_code_points" cbor:"4,keyasint"`
	Noncharacters   int64 `json:"noncharacters" cbor:"5,keyasint"`
	Characters      int64 `json:"characters" cbor:"6,keyasint"`
}

// PlaneSpec is the wire form of a plane descriptor. Low and High are
// inclusive code point bounds.
type PlaneSpec struct {
	Index int32  `json:"index" cbor:"1,keyasint"`
	Low   uint32 `json:"low" cbor:"2,keyasint"`
	High  uint32 `json:"high" cbor:"3,keyasint"`
	Name  string `json:"name,omitempty" cbor:"4,keyasint,omitempty"`
	Alias string `json:"alias,omitempty" cbor:"5,keyasint,omitempty"`
}

type GetPlaneRequest struct {
	Index int32 `json:"index" cbor:"1,keyasint"`
}

type GetPlaneResponse struct {
	Plane PlaneSpec `json:"plane" cbor:"1,keyasint"`
}

type ListPlanesRequest struct{}

type ListPlanesResponse struct {
	Planes []PlaneSpec `json:"planes" cbor:"1,keyasint"`
}

type ListNoncharactersRequest struct{}

type ListNoncharactersResponse struct {
	CodePoints []uint32 `json:"code_points" cbor:"1,keyasint"`
}

type InspectRequest struct {
	CodePoint uint32 `json:"code_point" cbor:"1,keyasint"`
}

type InspectResponse struct {
	Report inspect.Report `json:"report" cbor:"1,keyasint"`
}

// ---------------------------------------------------------------------------
// CodespaceService
// ---------------------------------------------------------------------------

// CodespaceService answers structural queries about the codespace. When a
// catalog store is set, plane and noncharacter queries are served from it;
// otherwise the in-memory table is used.
type CodespaceService struct {
	store *catalog.Store
}

func NewCodespaceService(store *catalog.Store) *CodespaceService {
	return &CodespaceService{store: store}
}

func (s *CodespaceService) Counts(ctx context.Context, req *connect.Request[CountsRequest]) (*connect.Response[CountsResponse], error) {
	return connect.NewResponse(&CountsResponse{
		CodePoints:      int64(codespace.NumberOfCodePoints()),
		HighSurrogates:  int64(codespace.NumberOfHighSurrogateCodePoints()),
		LowSurrogates:   int64(codespace.NumberOfLowSurrogateCodePoints()),
		ValidCodePoints: int64(codespace.NumberOfValidCodePoints()),
		Noncharacters:   int64(codespace.NumberOfNoncharacterCodePoints()),
		Characters:      int64(codespace.NumberOfCharacterCodePoints()),
	}), nil
}

func (s *CodespaceService) GetPlane(ctx context.Context, req *connect.Request[GetPlaneRequest]) (*connect.Response[GetPlaneResponse], error) {
	p, err := codespace.GetPlaneSpecification(int(req.Msg.Index))
	if err != nil {
		return nil, connect.NewError(connect.CodeOutOfRange, err)
	}
	if s.store != nil {
		p, err = s.store.PlaneAt(p.Low)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	return connect.NewResponse(&GetPlaneResponse{Plane: planeSpec(p)}), nil
}

func (s *CodespaceService) ListPlanes(ctx context.Context, req *connect.Request[ListPlanesRequest]) (*connect.Response[ListPlanesResponse], error) {
	all := codespace.Planes()
	if s.store != nil {
		var err error
		all, err = s.store.Planes()
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	specs := make([]PlaneSpec, len(all))
	for i, p := range all {
		specs[i] = planeSpec(p)
	}
	return connect.NewResponse(&ListPlanesResponse{Planes: specs}), nil
}

func (s *CodespaceService) ListNoncharacters(ctx context.Context, req *connect.Request[ListNoncharactersRequest]) (*connect.Response[ListNoncharactersResponse], error) {
	all := codespace.Noncharacters()
	if s.store != nil {
		var err error
		all, err = s.store.Noncharacters()
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	cps := make([]uint32, len(all))
	for i, cp := range all {
		cps[i] = uint32(cp)
	}
	return connect.NewResponse(&ListNoncharactersResponse{CodePoints: cps}), nil
}

func (s *CodespaceService) Inspect(ctx context.Context, req *connect.Request[InspectRequest]) (*connect.Response[InspectResponse], error) {
	report, err := inspect.Inspect(rune(req.Msg.CodePoint))
	if err != nil {
		return nil, connect.NewError(connect.CodeOutOfRange, err)
	}
	return connect.NewResponse(&InspectResponse{Report: report}), nil
}

func planeSpec(p codespace.Plane) PlaneSpec {
	return PlaneSpec{
		Index: int32(p.Index),
		Low:   uint32(p.Low),
		High:  uint32(p.High),
		Name:  p.Name,
		Alias: p.Alias,
	}
}
