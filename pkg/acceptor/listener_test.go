package acceptor

import (
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, l *Listener) net.Conn {
	t.Helper()

	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(l.Port())), time.Second)
	require.NoError(t, err)

	return conn
}

func TestListen_AcceptsSequentialClients(t *testing.T) {
	l, err := Listen(0)
	require.NoError(t, err)

	defer l.Close()

	assert.NotZero(t, l.Port())

	for i := 0; i < 3; i++ {
		client := dial(t, l)

		conn, err := l.Accept()
		require.NoError(t, err)

		require.NoError(t, conn.Close())
		require.NoError(t, client.Close())
	}
}

func TestListen_SecondClientWaitsForFirst(t *testing.T) {
	l, err := Listen(0)
	require.NoError(t, err)

	defer l.Close()

	first := dial(t, l)
	defer first.Close()

	conn1, err := l.Accept()
	require.NoError(t, err)

	second := dial(t, l)
	defer second.Close()

	accepted := make(chan net.Conn, 1)

	go func() {
		conn, err := l.Accept()
		if err != nil {
			close(accepted)
			return
		}

		accepted <- conn
	}()

	select {
	case <-accepted:
		t.Fatal("second connection accepted while the first is still open")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, conn1.Close())

	select {
	case conn2, ok := <-accepted:
		require.True(t, ok, "accept failed")
		require.NoError(t, conn2.Close())
	case <-time.After(2 * time.Second):
		t.Fatal("second connection was never accepted")
	}
}

func TestListen_PortInUse(t *testing.T) {
	l, err := Listen(0)
	require.NoError(t, err)

	defer l.Close()

	dup, err := Listen(l.Port())
	require.Error(t, err)
	assert.Nil(t, dup)
	assert.True(t, errors.Is(err, ErrBindFailed) || errors.Is(err, ErrListenFailed), "unexpected error: %v", err)
}

func TestListen_InvalidPort(t *testing.T) {
	for _, port := range []int{-1, 65536} {
		l, err := Listen(port)
		require.ErrorIs(t, err, ErrBindFailed)
		assert.Nil(t, l)
	}
}

func TestListener_CloseUnblocksAccept(t *testing.T) {
	l, err := Listen(0)
	require.NoError(t, err)

	done := make(chan error, 1)

	go func() {
		_, err := l.Accept()
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, l.Close())

	select {
	case err := <-done:
		require.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Accept did not return after Close")
	}
}
