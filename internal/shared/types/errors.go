package types

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFunctionName   = errors.New("no Lambda function name given. Use --function or set function_name in the config file")
	ErrUnsupportedReportType = errors.New("unsupported report type")
)

// RenderError indica que o CloudWatch não devolveu o gráfico.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("error fetching graph: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PublishError indica que a publicação no SNS falhou depois de uma renderização bem-sucedida.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("error sending report via SNS: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
