package table

import "github.com/sigilaris/sigilaris-sub000/codec"

// Codec is the per-entry encode/decode pair table keys and values use. It
// is an alias for codec.Codec so schema declarations can write table.Codec
// without importing the codec package directly.
type Codec[T any] = codec.Codec[T]
