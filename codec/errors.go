package codec

import "fmt"

// DecodeFailure reports a decoding error together with the context it
// occurred in and whatever input bytes were left unconsumed. Over-reading
// past the end of the input is always reported this way; it is never
// undefined behavior.
type DecodeFailure struct {
	Context   string
	Message   string
	Remainder []byte
}

func (e *DecodeFailure) Error() string {
	return fmt.Sprintf("codec: %s: %s (%d bytes remaining)", e.Context, e.Message, len(e.Remainder))
}

// CoreKind reports this error's CoreFailure kind, satisfying
// corefail.Failure without codec needing to import that package.
func (e *DecodeFailure) CoreKind() string { return "DecodeFailure" }

func newDecodeFailure(context, message string, remainder []byte) error {
	return &DecodeFailure{Context: context, Message: message, Remainder: remainder}
}
