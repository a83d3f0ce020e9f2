// Package wire implements the portable value buffer used to move values
// and templates between test components.
//
// The format is self-delimiting but not self-describing: producer and
// consumer push and pull fields in the same order.
//
//	integer   signed varint (see AppendInt)
//	float     8 bytes, IEEE-754, big-endian
//	string    varint(byte count) || bytes
//	raw       bytes, length known from context
//
// A sender pushes all fields into a buffer obtained from Get and then calls
// CalculateLength, which prepends the payload length into space reserved in
// front of the data:
//
//	b := wire.Get()
//	defer wire.Put(b)
//	b.PushString("abc")
//	b.PushInt(-130)
//	if err := b.CalculateLength(); err != nil { ... }
//	conn.Write(b.Bytes())
//
// A receiver appends stream data with Write and drains complete messages:
//
//	for in.IsMessage() {
//	    in.PullInt() // length header
//	    ...          // pull fields
//	    in.CutMessage()
//	}
//
// Decode failures are returned as *errors.Error unless a Reporter is set,
// in which case the encdec behavior registry decides whether they fail,
// warn or are ignored. Buffers are not safe for concurrent use.
package wire
