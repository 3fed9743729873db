// Package weberr builds errors that carry instructions for the edge of the
// service: which body and status to respond with, and which extra fields to
// log. Handlers return them, the Errors middleware unpacks them.
package weberr

type Opt func(error) error

// Wrap decorates err with the given behaviors.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse attaches the body and status the client should receive.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches structured fields for the error log line.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
