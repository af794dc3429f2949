// Package txwire implements the minimal subset of the network transaction
// wire format the backend needs: decoding signed transactions in both the
// legacy and the versioned envelope, locating the built-in system-program
// transfer instruction, and rewriting the recency token (blockhash) before
// a resend.
package txwire

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// LamportsPerSol is the fixed subunit-per-unit constant of the native currency.
const LamportsPerSol = 1_000_000_000

// transferKind is the little-endian discriminator of the system-program
// transfer instruction.
const transferKind uint32 = 2

const signatureLen = 64

// SystemProgramID is the account key of the built-in transfer program.
// Its base58 form is "11111111111111111111111111111111".
var SystemProgramID [32]byte

var (
	ErrTruncated          = errors.New("txwire: truncated transaction")
	ErrUnsupportedVersion = errors.New("txwire: unsupported message version")
)

// CompiledInstruction references accounts by index into the message key table.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is the common surface of the legacy and versioned message formats.
type Message interface {
	AccountKeys() [][32]byte
	Instructions() []CompiledInstruction
	RecentBlockhash() [32]byte
	SetRecentBlockhash(h [32]byte)

	encode(buf *bytes.Buffer)
}

// Transaction holds signatures plus a decoded message of either format.
type Transaction struct {
	Signatures [][signatureLen]byte
	Message    Message
}

// legacyMessage is the inline-instruction message format.
type legacyMessage struct {
	header       [3]byte
	keys         [][32]byte
	blockhash    [32]byte
	instructions []CompiledInstruction
}

func (m *legacyMessage) AccountKeys() [][32]byte             { return m.keys }
func (m *legacyMessage) Instructions() []CompiledInstruction { return m.instructions }
func (m *legacyMessage) RecentBlockhash() [32]byte           { return m.blockhash }
func (m *legacyMessage) SetRecentBlockhash(h [32]byte)       { m.blockhash = h }

// addressTableLookup loads extra accounts from an on-chain lookup table.
type addressTableLookup struct {
	tableKey        [32]byte
	writableIndexes []uint8
	readonlyIndexes []uint8
}

// versionedMessage is the v0 message format: flat compiled instructions over
// a shared key table plus address table lookups.
type versionedMessage struct {
	version byte
	legacyMessage
	lookups []addressTableLookup
}

// Decode parses a serialized signed transaction of either wire format.
func Decode(raw []byte) (*Transaction, error) {
	r := &reader{buf: raw}

	sigCount := r.shortvec()
	tx := &Transaction{}
	for i := 0; i < sigCount && r.err == nil; i++ {
		var sig [signatureLen]byte
		copy(sig[:], r.take(signatureLen))
		tx.Signatures = append(tx.Signatures, sig)
	}

	prefix := r.peek()
	if prefix&0x80 == 0 {
		msg := &legacyMessage{}
		r.message(msg)
		tx.Message = msg
		return tx, r.err
	}

	version := prefix & 0x7f
	if version != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	r.take(1)
	msg := &versionedMessage{version: version}
	r.message(&msg.legacyMessage)
	lookupCount := r.shortvec()
	for i := 0; i < lookupCount && r.err == nil; i++ {
		var l addressTableLookup
		copy(l.tableKey[:], r.take(32))
		l.writableIndexes = append([]uint8(nil), r.take(r.shortvec())...)
		l.readonlyIndexes = append([]uint8(nil), r.take(r.shortvec())...)
		msg.lookups = append(msg.lookups, l)
	}
	tx.Message = msg
	return tx, r.err
}

// DecodeBase64 parses a base64-encoded signed transaction.
func DecodeBase64(s string) (*Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("txwire: decode base64: %w", err)
	}
	return Decode(raw)
}

// Encode serializes the transaction back to wire bytes.
func (t *Transaction) Encode() []byte {
	var buf bytes.Buffer
	putShortvec(&buf, len(t.Signatures))
	for _, sig := range t.Signatures {
		buf.Write(sig[:])
	}
	t.Message.encode(&buf)
	return buf.Bytes()
}

// EncodeBase64 serializes the transaction to the base64 form the node accepts.
func (t *Transaction) EncodeBase64() string {
	return base64.StdEncoding.EncodeToString(t.Encode())
}

// ID returns the base58 form of the first signature, which identifies the
// transaction on the network.
func (t *Transaction) ID() string {
	if len(t.Signatures) == 0 {
		return ""
	}
	return base58.Encode(t.Signatures[0][:])
}

// NativeTransferLamports scans the instruction list for a system-program
// transfer and returns its lamport amount. The second result is false when
// the transaction carries no such instruction.
func (t *Transaction) NativeTransferLamports() (uint64, bool) {
	keys := t.Message.AccountKeys()
	for _, ins := range t.Message.Instructions() {
		if int(ins.ProgramIDIndex) >= len(keys) {
			continue
		}
		if keys[ins.ProgramIDIndex] != SystemProgramID {
			continue
		}
		if len(ins.Data) < 12 {
			continue
		}
		if binary.LittleEndian.Uint32(ins.Data[:4]) != transferKind {
			continue
		}
		return binary.LittleEndian.Uint64(ins.Data[4:12]), true
	}
	return 0, false
}

// TransferData builds the payload of a system-program transfer instruction.
// Used by tests and by clients composing synthetic transactions.
func TransferData(lamports uint64) []byte {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[:4], transferKind)
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	return data
}

func (m *legacyMessage) encode(buf *bytes.Buffer) {
	buf.Write(m.header[:])
	putShortvec(buf, len(m.keys))
	for _, k := range m.keys {
		buf.Write(k[:])
	}
	buf.Write(m.blockhash[:])
	putShortvec(buf, len(m.instructions))
	for _, ins := range m.instructions {
		buf.WriteByte(ins.ProgramIDIndex)
		putShortvec(buf, len(ins.Accounts))
		buf.Write(ins.Accounts)
		putShortvec(buf, len(ins.Data))
		buf.Write(ins.Data)
	}
}

func (m *versionedMessage) encode(buf *bytes.Buffer) {
	buf.WriteByte(0x80 | m.version)
	m.legacyMessage.encode(buf)
	putShortvec(buf, len(m.lookups))
	for _, l := range m.lookups {
		buf.Write(l.tableKey[:])
		putShortvec(buf, len(l.writableIndexes))
		buf.Write(l.writableIndexes)
		putShortvec(buf, len(l.readonlyIndexes))
		buf.Write(l.readonlyIndexes)
	}
}

// reader tracks offset and the first error while decoding.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.buf) {
		r.err = ErrTruncated
		return nil
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out
}

func (r *reader) peek() byte {
	if r.err != nil || r.off >= len(r.buf) {
		r.err = ErrTruncated
		return 0
	}
	return r.buf[r.off]
}

// shortvec decodes the compact-u16 length prefix.
func (r *reader) shortvec() int {
	var value, shift uint
	for {
		b := r.take(1)
		if r.err != nil {
			return 0
		}
		value |= uint(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return int(value)
		}
		shift += 7
		if shift > 14 {
			r.err = ErrTruncated
			return 0
		}
	}
}

func (r *reader) message(m *legacyMessage) {
	copy(m.header[:], r.take(3))
	keyCount := r.shortvec()
	for i := 0; i < keyCount && r.err == nil; i++ {
		var key [32]byte
		copy(key[:], r.take(32))
		m.keys = append(m.keys, key)
	}
	copy(m.blockhash[:], r.take(32))
	insCount := r.shortvec()
	for i := 0; i < insCount && r.err == nil; i++ {
		var ins CompiledInstruction
		program := r.take(1)
		if r.err != nil {
			return
		}
		ins.ProgramIDIndex = program[0]
		ins.Accounts = append([]uint8(nil), r.take(r.shortvec())...)
		ins.Data = append([]byte(nil), r.take(r.shortvec())...)
		m.instructions = append(m.instructions, ins)
	}
}

func putShortvec(buf *bytes.Buffer, n int) {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			buf.WriteByte(b)
			return
		}
		buf.WriteByte(b | 0x80)
	}
}
