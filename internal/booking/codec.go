package booking

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot files are CBOR with deterministic encoding so identical
// state produces identical bytes. Times are encoded as tagged RFC 3339
// strings; calendar dates keep their zone across round trips.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	opts.TimeTag = cbor.EncTagRequired
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("booking: building cbor encode mode: %v", err))
	}
	encMode = em

	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("booking: building cbor decode mode: %v", err))
	}
	decMode = dm
}

func encodeSnapshot(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

func decodeSnapshot(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}
