package nbt

import (
	"io"

	gonbt "github.com/Tnze/go-mc/nbt"
)

// Unmarshal decodes one uncompressed NBT compound from r into v. Struct fields are matched by their `nbt` tag;
// tags without a matching field are skipped. The stream is read to the end before decoding, since the decoder
// does not retry short reads.
func Unmarshal(r io.Reader, v interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return gonbt.Unmarshal(data, v)
}
