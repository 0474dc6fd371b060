package action

import (
	"context"
	"fmt"

	"renkon/boxed"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/wire"
)

// ReturnResponseID identifies the built-in return-response action.
const ReturnResponseID ident.Action = "return-response"

const keyResponseID = "response-id"

// ReturnResponse resolves a response id in the endpoint's catalogue and
// returns the produced response, terminating the pipeline.
type ReturnResponse struct {
	ResponseID ident.Response
}

// NewReturnResponse builds the action for a response id.
func NewReturnResponse(id ident.Response) *ReturnResponse {
	return &ReturnResponse{ResponseID: id}
}

// ReturnResponseType is the type-table entry for return-response.
func ReturnResponseType() Type {
	return Type{
		ID: ReturnResponseID,
		Make: func(cfg Configuration) (Action, error) {
			value, err := requireValue(cfg, keyResponseID)
			if err != nil {
				return nil, err
			}
			id, ok := value.AsString()
			if !ok {
				return nil, wire.ErrConfigTypeMismatch(
					fmt.Sprintf("configuration key '%s' of action '%s' must be a string, got %s",
						keyResponseID, cfg.ID, value.Kind()))
			}
			return NewReturnResponse(ident.Response(id)), nil
		},
	}
}

// Perform resolves the response factory and invokes it. A response id not
// declared on the endpoint is a fatal pipeline error.
func (a *ReturnResponse) Perform(ctx context.Context, req *wire.Request, ectx *endpoint.Context) (*wire.Response, error) {
	factory, ok := ectx.Endpoint.Response(a.ResponseID)
	if !ok {
		return nil, wire.ErrResponseNotFound(
			fmt.Sprintf("response '%s' is not declared on endpoint '%s'", a.ResponseID, ectx.Endpoint.ID))
	}
	resp, err := factory(req, ectx)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.ID == "" {
		resp.ID = a.ResponseID
	}
	return resp, nil
}

// MakeConfiguration re-serializes the action.
func (a *ReturnResponse) MakeConfiguration() Configuration {
	return NewConfiguration(ReturnResponseID, map[string]boxed.Value{
		keyResponseID: boxed.String(string(a.ResponseID)),
	})
}
