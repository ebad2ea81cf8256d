// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package commands

import (
	"bytes"
	"context"
	"encoding/hex"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pion/spacepacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

// syncBuffer lets a test read output written by a command running in
// another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &syncBuffer{}
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(out)
	err := cmd.Execute()

	return out.String(), err
}

func listen(t *testing.T) *spacepacket.Receiver {
	t.Helper()

	conn, err := nettest.NewLocalPacketListener("udp")
	require.NoError(t, err)

	receiver, err := spacepacket.NewReceiver(conn)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, receiver.Close())
	})

	return receiver
}

func readPacket(t *testing.T, receiver *spacepacket.Receiver) *spacepacket.Packet {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, _, err := receiver.ReadPacket(ctx)
	require.NoError(t, err)

	return p
}

func TestBuild(t *testing.T) {
	for _, test := range []struct {
		Name string
		Args []string
		Want string
	}{
		{"Defaults", nil, "1002c000000301020304"},
		{"Secondary header", []string{"--apid", "1", "--sec-header"}, "1801c000000301020304"},
		{"Telemetry first segment", []string{
			"--type", "tm", "--apid", "0x2a5", "--seq-flags", "first", "--seq-count", "4660", "--payload", "00",
		}, "02a55234000000"},
		{"Prefixed payload", []string{"--apid", "1", "--payload", "0xCAFE"}, "1001c0000001cafe"},
	} {
		t.Run(test.Name, func(t *testing.T) {
			out, err := run(t, "", append([]string{"build"}, test.Args...)...)
			require.NoError(t, err)
			assert.Equal(t, test.Want+"\n", out)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	for _, test := range []struct {
		Name    string
		Args    []string
		WantErr error
	}{
		{"APID too large", []string{"--apid", "2048"}, &spacepacket.RangeError{Field: spacepacket.FieldAPID}},
		{"Sequence count too large", []string{"--seq-count", "16384"}, &spacepacket.RangeError{Field: spacepacket.FieldSequenceCount}},
		{"Odd hex", []string{"--payload", "123"}, errOddHex},
		{"Empty hex", []string{"--payload", " "}, errEmptyHex},
	} {
		t.Run(test.Name, func(t *testing.T) {
			_, err := run(t, "", append([]string{"build"}, test.Args...)...)
			assert.ErrorIs(t, err, test.WantErr)
		})
	}

	_, err := run(t, "", "build", "--payload", "zz")
	assert.ErrorContains(t, err, "invalid hex payload")

	_, err = run(t, "", "build", "--type", "idle")
	assert.Error(t, err)
}

func TestBuildFromEnvironmentAndConfig(t *testing.T) {
	t.Setenv("SPP_APID", "7")
	out, err := run(t, "", "build")
	require.NoError(t, err)
	assert.Equal(t, "1007c000000301020304\n", out)

	// Flags win over the environment.
	out, err = run(t, "", "build", "--apid", "8")
	require.NoError(t, err)
	assert.Equal(t, "1008c000000301020304\n", out)

	path := filepath.Join(t.TempDir(), "spp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payload: ff\nseq-count: 3\n"), 0o600))

	out, err = run(t, "", "build", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "1007c0030000ff\n", out)

	_, err = run(t, "", "build", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "", "build", "--log-level", "trace")
	assert.NoError(t, err)

	_, err = run(t, "", "build", "--log-level", "loud")
	assert.ErrorIs(t, err, errUnknownLogLevel)
}

func TestParse(t *testing.T) {
	out, err := run(t, "", "parse", "1801c000000301020304")
	require.NoError(t, err)

	assert.Contains(t, out, "TC (1)")
	assert.Contains(t, out, "Unsegmented (3)")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "Payload (hex): 01020304")

	_, err = run(t, "", "parse", "1801c0000003010203")
	assert.ErrorIs(t, err, &spacepacket.TruncatedPayloadError{})

	_, err = run(t, "", "parse", "1801c0")
	assert.ErrorIs(t, err, &spacepacket.TruncatedHeaderError{})

	_, err = run(t, "", "parse")
	assert.ErrorIs(t, err, errParseInput)
}

func TestParseFile(t *testing.T) {
	stream, err := hex.DecodeString("1001c000000301020304" + "0005c0070000ee")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "capture.bin")
	require.NoError(t, os.WriteFile(path, stream, 0o600))

	out, err := run(t, "", "parse", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Packet 1")
	assert.Contains(t, out, "Payload (hex): 01020304")
	assert.Contains(t, out, "Packet 2")
	assert.Contains(t, out, "Payload (hex): ee")

	out, err = run(t, string(stream[:len(stream)-1]), "parse", "--file", "-")
	assert.ErrorIs(t, err, &spacepacket.TruncatedPayloadError{})
	assert.Contains(t, out, "Packet 1")
	assert.ErrorContains(t, err, "packet 2")
}

func TestSend(t *testing.T) {
	receiver := listen(t)

	out, err := run(t, "", "send", receiver.Addr().String(), "--apid", "5", "--payload", "aabb", "--seq-count", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Space packet (hex): 1005c0090001aabb")
	assert.Contains(t, out, "Packet sent to "+receiver.Addr().String())

	p := readPacket(t, receiver)
	assert.Equal(t, uint16(5), p.Header.APID)
	assert.Equal(t, uint16(9), p.Header.SequenceCount)
	assert.Equal(t, []byte{0xaa, 0xbb}, p.Payload)
}

func TestSendInteractive(t *testing.T) {
	receiver := listen(t)

	stdin := "0102\nzz\n\n03\nexit\nff\n"
	out, err := run(t, stdin, "send", receiver.Addr().String(), "--interactive", "--seq-count", "16383")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid payload")
	assert.Equal(t, 2, strings.Count(out, "Packet sent to"))

	first := readPacket(t, receiver)
	assert.Equal(t, uint16(16383), first.Header.SequenceCount)
	assert.Equal(t, []byte{0x01, 0x02}, first.Payload)

	// The sequence count wraps and skips the rejected line.
	second := readPacket(t, receiver)
	assert.Equal(t, uint16(0), second.Header.SequenceCount)
	assert.Equal(t, []byte{0x03}, second.Payload)
}

func TestSendInteractiveEndOfInput(t *testing.T) {
	receiver := listen(t)

	out, err := run(t, "abcd\n", "send", receiver.Addr().String(), "-i")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Packet sent to"))
	assert.Equal(t, []byte{0xab, 0xcd}, readPacket(t, receiver).Payload)
}

func TestRecv(t *testing.T) {
	// Reserve a port, then hand it to the command.
	conn, err := nettest.NewLocalPacketListener("udp")
	require.NoError(t, err)
	addr := conn.LocalAddr().String()
	require.NoError(t, conn.Close())

	done := make(chan error, 1)
	out := &syncBuffer{}
	go func() {
		cmd := NewRootCmd()
		cmd.SetArgs([]string{"recv", addr, "--count", "1"})
		cmd.SetOut(out)
		cmd.SetErr(out)
		done <- cmd.Execute()
	}()

	raddr, err := net.ResolveUDPAddr("udp", addr)
	require.NoError(t, err)
	sender, err := spacepacket.Dial("udp", raddr)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, sender.Close())
	}()

	malformed, err := net.Dial("udp", addr)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, malformed.Close())
	}()

	p, err := spacepacket.NewPacket(spacepacket.Telemetry, 42, 1, []byte{0xde, 0xad})
	require.NoError(t, err)

	// Datagrams sent before the command binds are lost and may surface as
	// write errors on the connected socket.
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Contains(t, out.String(), "Received packet from")
			assert.Contains(t, out.String(), "Payload (hex): dead")

			return
		case <-ticker.C:
			_, _ = malformed.Write([]byte{0x00, 0x01})
			_, _ = sender.Send(p)
		case <-timeout:
			t.Fatal("recv did not finish")
		}
	}
}

func TestDecodeHex(t *testing.T) {
	for in, want := range map[string][]byte{
		"01020304":   {0x01, 0x02, 0x03, 0x04},
		" 0xCAFE\n":  {0xca, 0xfe},
		"0Xff":       {0xff},
		"DeadBeef00": {0xde, 0xad, 0xbe, 0xef, 0x00},
	} {
		got, err := decodeHex(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := decodeHex("")
	assert.ErrorIs(t, err, errEmptyHex)
	_, err = decodeHex("abc")
	assert.ErrorIs(t, err, errOddHex)
	_, err = decodeHex("gg")
	assert.Error(t, err)
}

func TestPrintPacket(t *testing.T) {
	p, err := spacepacket.NewPacket(spacepacket.Telemetry, 123, 1, []byte("TEST"),
		spacepacket.WithSequenceFlags(spacepacket.Continuation), spacepacket.WithSecondaryHeader(true))
	require.NoError(t, err)

	var out bytes.Buffer
	printPacket(&out, p)

	for _, want := range []string{"Field", "Value", "TM (0)", "123", "Continuation (0)", "Payload (hex): 54455354"} {
		assert.Contains(t, out.String(), want)
	}
}
