package chunk

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessage = "This is where your secret message will be!"

// testCrc is CRC-32 (ISO-HDLC) over "RuSt" + testMessage.
const testCrc = uint32(2882656334)

// testWire assembles the on-wire bytes for a "RuSt" chunk carrying
// testMessage with the given CRC trailer.
func testWire(crc uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(testMessage)))
	b = append(b, "RuSt"...)
	b = append(b, testMessage...)
	return binary.BigEndian.AppendUint32(b, crc)
}

func TestNew(t *testing.T) {
	ct, err := TypeFromString("RuSt")
	require.NoError(t, err)

	c := New(ct, []byte(testMessage))
	assert.Equal(t, uint32(42), c.Length)
	assert.Equal(t, testCrc, c.Crc)
	assert.Equal(t, ct, c.Type)
}

func TestNewEmptyData(t *testing.T) {
	ct, err := TypeFromString("IEND")
	require.NoError(t, err)

	c := New(ct, nil)
	assert.Equal(t, uint32(0), c.Length)
	// Known IEND trailer.
	assert.Equal(t, uint32(0xAE426082), c.Crc)
}

func TestDecode(t *testing.T) {
	c, err := Decode(testWire(testCrc))
	require.NoError(t, err)

	assert.Equal(t, uint32(42), c.Length)
	assert.Equal(t, "RuSt", c.Type.String())
	assert.Equal(t, testCrc, c.Crc)

	msg, err := c.DataAsString()
	require.NoError(t, err)
	assert.Equal(t, testMessage, msg)
}

func TestDecodeBadCrc(t *testing.T) {
	_, err := Decode(testWire(2882656333))
	var crcErr *CrcError
	require.ErrorAs(t, err, &crcErr)
	assert.Equal(t, uint32(2882656333), crcErr.Stored)
	assert.Equal(t, testCrc, crcErr.Computed)
}

func TestDecodeTruncated(t *testing.T) {
	wire := testWire(testCrc)
	for _, n := range []int{0, 3, 11, len(wire) - 1} {
		_, err := Decode(wire[:n])
		assert.Truef(t, errors.Is(err, ErrTruncated), "prefix of %d bytes: got %v", n, err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ct, err := TypeFromString("RuSt")
	require.NoError(t, err)
	c := New(ct, []byte(testMessage))

	wire := c.Encode()
	assert.Equal(t, testWire(testCrc), wire)

	back, err := Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

// Flipping any single byte of the encoded form must trip either the CRC
// check or, for bytes inside the length field, the framing check.
func TestDecodeTamperSensitivity(t *testing.T) {
	ct, err := TypeFromString("RuSt")
	require.NoError(t, err)
	wire := New(ct, []byte(testMessage)).Encode()

	for i := range wire {
		tampered := append([]byte(nil), wire...)
		tampered[i] ^= 0x01
		_, err := Decode(tampered)
		assert.Errorf(t, err, "flipping byte %d went unnoticed", i)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	wire := append(testWire(testCrc), "IEND leftovers"...)
	c, err := Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), c.Length)
}

func TestDataAsStringRejectsBinary(t *testing.T) {
	ct, err := TypeFromString("ruSt")
	require.NoError(t, err)

	c := New(ct, []byte{0xFF, 0xFE, 0x80})
	_, err = c.DataAsString()
	assert.True(t, errors.Is(err, ErrNotText))
}
