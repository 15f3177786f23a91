package server

import (
	"context"

	"connectrpc.com/connect"

	"github.com/zerustech/string/codespace"
	"github.com/zerustech/string/inspect"
	"github.com/zerustech/string/metric"
)

const (
	TranscodingUTF8Procedure      = "/zerus.v1.TranscodingService/ConvertToUTF8"
	TranscodingUTF16Procedure     = "/zerus.v1.TranscodingService/ConvertToUTF16"
	TranscodingTranscodeProcedure = "/zerus.v1.TranscodingService/Transcode"
)

type ConvertRequest struct {
	CodePoint uint32 `json:"code_point" cbor:"1,keyasint"`
}

type ConvertResponse struct {
	Hex string `json:"hex" cbor:"1,keyasint"`
}

type TranscodeRequest struct {
	CodePoint uint32 `json:"code_point" cbor:"1,keyasint"`
}

type TranscodeResponse struct {
	UTF8     string `json:"utf8" cbor:"1,keyasint"`
	UTF16    string `json:"utf16,omitempty" cbor:"2,keyasint,omitempty"`
	Plane    int32  `json:"plane" cbor:"3,keyasint"`
	Category string `json:"category" cbor:"4,keyasint"`
	Notation string `json:"notation" cbor:"5,keyasint"`
}

// ---------------------------------------------------------------------------
// TranscodingService
// ---------------------------------------------------------------------------

// TranscodingService renders code points in their UTF-8 and UTF-16 forms.
type TranscodingService struct{}

func NewTranscodingService() *TranscodingService {
	return &TranscodingService{}
}

func (s *TranscodingService) ConvertToUTF8(ctx context.Context, req *connect.Request[ConvertRequest]) (*connect.Response[ConvertResponse], error) {
	hex, err := codespace.ConvertToUTF8(rune(req.Msg.CodePoint))
	if err != nil {
		return nil, connect.NewError(connect.CodeOutOfRange, err)
	}
	metric.ConversionsTotal.WithLabelValues("utf8").Inc()
	return connect.NewResponse(&ConvertResponse{Hex: hex}), nil
}

// ConvertToUTF16 mirrors the core conversion: the hex string is empty for
// surrogate code points and for values outside the codespace.
func (s *TranscodingService) ConvertToUTF16(ctx context.Context, req *connect.Request[ConvertRequest]) (*connect.Response[ConvertResponse], error) {
	metric.ConversionsTotal.WithLabelValues("utf16").Inc()
	return connect.NewResponse(&ConvertResponse{Hex: codespace.ConvertToUTF16(rune(req.Msg.CodePoint))}), nil
}

func (s *TranscodingService) Transcode(ctx context.Context, req *connect.Request[TranscodeRequest]) (*connect.Response[TranscodeResponse], error) {
	report, err := inspect.Inspect(rune(req.Msg.CodePoint))
	if err != nil {
		return nil, connect.NewError(connect.CodeOutOfRange, err)
	}
	metric.ConversionsTotal.WithLabelValues("utf8").Inc()
	metric.ConversionsTotal.WithLabelValues("utf16").Inc()
	return connect.NewResponse(&TranscodeResponse{
		UTF8:     report.UTF8,
		UTF16:    report.UTF16,
		Plane:    int32(report.Plane),
		Category: report.Category,
		Notation: report.Notation,
	}), nil
}
