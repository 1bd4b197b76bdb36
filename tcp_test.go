package netsock

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youda008/CppUtils-Network/netaddr"
)

var loopback = netaddr.IPFromV4(netaddr.IPv4Addr{127, 0, 0, 1})

// newLoopbackPair opens a listener on an OS-assigned port, connects a
// client to it and returns both ends of the resulting connection.
func newLoopbackPair(t *testing.T) (client *TCPClient, peer *TCPClient) {
	t.Helper()

	listener := NewTCPListener()
	require.NoError(t, listener.Open(0))
	t.Cleanup(func() { _ = listener.Close() })

	port := listener.Port()
	require.NotZero(t, port)

	type acceptResult struct {
		peer *TCPClient
		err  error
	}
	accepted := make(chan acceptResult, 1)
	go func() {
		p, _, err := listener.Accept()
		accepted <- acceptResult{p, err}
	}()

	client = NewTCPClient()
	require.NoError(t, client.ConnectAddr(loopback, port))
	t.Cleanup(func() {
		if client.IsConnected() {
			_ = client.Disconnect()
		}
	})

	result := <-accepted
	require.NoError(t, result.err)
	require.True(t, result.peer.IsValid())
	t.Cleanup(func() {
		if result.peer.IsConnected() {
			_ = result.peer.Disconnect()
		}
	})

	return client, result.peer
}

// TestTCPClient_ConnectGuards tests the wrong-call-order outcomes of the
// connect state machine.
func TestTCPClient_ConnectGuards(t *testing.T) {
	client, _ := newLoopbackPair(t)

	assert.ErrorIs(t, client.Connect("localhost", 1), AlreadyConnected)
	assert.ErrorIs(t, client.ConnectAddr(loopback, 1), AlreadyConnected)

	require.NoError(t, client.Disconnect())
	assert.ErrorIs(t, client.Disconnect(), NotConnected)
	assert.ErrorIs(t, client.Send([]byte{1}), NotConnected)
	_, err := client.Receive(make([]byte, 1))
	assert.ErrorIs(t, err, NotConnected)
}

// TestTCPClient_HostNotResolved tests resolution failure reporting.
func TestTCPClient_HostNotResolved(t *testing.T) {
	client := NewTCPClient()
	// The .invalid TLD is reserved and guaranteed to never resolve.
	assert.ErrorIs(t, client.Connect("no-such-host.invalid", 80), HostNotResolved)
	assert.False(t, client.IsConnected())
}

// TestTCPClient_ConnectFailed tests connecting to a port nobody listens on.
func TestTCPClient_ConnectFailed(t *testing.T) {
	// Grab a port the OS considers free, then release it again.
	listener := NewTCPListener()
	require.NoError(t, listener.Open(0))
	port := listener.Port()
	require.NoError(t, listener.Close())

	client := NewTCPClient()
	assert.ErrorIs(t, client.ConnectAddr(loopback, port), ConnectFailed)
	assert.False(t, client.IsConnected())
	assert.NotZero(t, client.LastSystemError())
}

// TestTCP_SendReceiveIntegrity sends more data than one OS buffer holds and
// verifies the peer receives the exact byte sequence, exercising the
// partial send/receive loops.
func TestTCP_SendReceiveIntegrity(t *testing.T) {
	client, peer := newLoopbackPair(t)

	const payloadSize = 70000
	payload := make([]byte, payloadSize)
	for i := range payload {
		payload[i] = byte(i * 31)
	}

	sendDone := make(chan error, 1)
	go func() {
		sendDone <- client.Send(payload)
	}()

	received := make([]byte, payloadSize)
	n, err := peer.Receive(received)
	require.NoError(t, err)
	assert.Equal(t, payloadSize, n)
	assert.True(t, bytes.Equal(payload, received))

	require.NoError(t, <-sendDone)
}

// TestTCP_OrderlyCloseDetection verifies that the receiver observes the
// sender's disconnect as ConnectionClosed together with the bytes collected
// before EOF, and that the instance is terminally disconnected afterwards.
func TestTCP_OrderlyCloseDetection(t *testing.T) {
	client, peer := newLoopbackPair(t)

	tail := []byte("final words")
	require.NoError(t, client.Send(tail))
	require.NoError(t, client.Disconnect())

	buffer := make([]byte, 64)
	n, err := peer.Receive(buffer)
	assert.ErrorIs(t, err, ConnectionClosed)
	assert.Equal(t, len(tail), n)
	assert.Equal(t, tail, buffer[:n])

	assert.False(t, peer.IsConnected())
	_, err = peer.Receive(buffer)
	assert.ErrorIs(t, err, NotConnected)
}

// TestTCP_NonBlockingReceive verifies that a non-blocking receive with no
// data available returns WouldBlock without stalling the caller.
func TestTCP_NonBlockingReceive(t *testing.T) {
	_, peer := newLoopbackPair(t)

	require.True(t, peer.SetBlocking(false))
	assert.False(t, peer.IsBlocking())

	start := time.Now()
	n, err := peer.Receive(make([]byte, 16))
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, WouldBlock)
	assert.Zero(t, n)
	assert.Less(t, elapsed, 200*time.Millisecond)
}

// TestTCP_ReceiveTimeout verifies the SetTimeout classification on a
// blocking socket.
func TestTCP_ReceiveTimeout(t *testing.T) {
	_, peer := newLoopbackPair(t)

	require.True(t, peer.SetTimeout(100*time.Millisecond))

	start := time.Now()
	n, err := peer.Receive(make([]byte, 16))
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, Timeout)
	assert.Zero(t, n)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

// TestTCP_ReceiveOnce verifies the single-call receive variant including
// its orderly-close classification.
func TestTCP_ReceiveOnce(t *testing.T) {
	client, peer := newLoopbackPair(t)

	payload := []byte("one datagram worth of stream")
	require.NoError(t, client.Send(payload))

	data, err := peer.ReceiveOnce()
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	require.NoError(t, client.Disconnect())
	data, err = peer.ReceiveOnce()
	assert.ErrorIs(t, err, ConnectionClosed)
	assert.Nil(t, data)

	_, err = peer.ReceiveOnce()
	assert.ErrorIs(t, err, NotConnected)
}

// TestTCPClient_Take verifies the move semantics of handle ownership.
func TestTCPClient_Take(t *testing.T) {
	client, peer := newLoopbackPair(t)

	moved := client.Take()
	assert.False(t, client.IsValid())
	assert.False(t, client.IsBlocking())
	assert.Zero(t, client.LastSystemError())
	assert.True(t, moved.IsConnected())

	// The moved-out source refuses operations; the new owner works.
	assert.ErrorIs(t, client.Send([]byte{1}), NotConnected)
	require.NoError(t, moved.Send([]byte("still here")))

	buffer := make([]byte, 10)
	n, err := peer.Receive(buffer)
	require.NoError(t, err)
	assert.Equal(t, "still here", string(buffer[:n]))

	require.NoError(t, moved.Disconnect())
}

// TestTCPClient_SetBlockingInvalid verifies that toggling the mode of an
// invalid handle fails and records the OS error.
func TestTCPClient_SetBlockingInvalid(t *testing.T) {
	client := NewTCPClient()
	assert.False(t, client.SetBlocking(false))
	assert.NotZero(t, client.LastSystemError())
	// The stored flag must not change on failure.
	assert.True(t, client.IsBlocking())
}
