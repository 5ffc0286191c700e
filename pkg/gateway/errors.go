package gateway

import "fmt"

/**************************************************************************************************
** GatewayError reports a failed backend call: either the transport failed (Err set) or the
** backend answered with a non-2xx status (StatusCode and Body set).
**************************************************************************************************/
type GatewayError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gateway %s: error response: %d - %s", e.Op, e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
