package ws

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu     sync.Mutex
	msgs   []string
	fail   bool
	closed bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.msgs = append(c.msgs, string(data))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.msgs...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHub_PublishLlegaATodos(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(zerolog.Nop())
	done := make(chan struct{})
	go func() { h.Run(ctx); close(done) }()

	ok := &fakeConn{}
	broken := &fakeConn{fail: true}
	h.Register(ok)
	h.Register(broken)
	assert.Eventually(t, func() bool { return h.Clients() == 2 }, time.Second, 10*time.Millisecond)

	h.Publish(map[string]int{"routes": 3})
	assert.Eventually(t, func() bool { return len(ok.messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, `{"routes":3}`, ok.messages()[0])
	assert.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)
	assert.True(t, broken.isClosed())

	cancel()
	<-done
	assert.True(t, ok.isClosed())
	assert.Equal(t, 0, h.Clients())
}

func TestHub_Unregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(zerolog.Nop())
	go h.Run(ctx)

	c := &fakeConn{}
	h.Register(c)
	h.Unregister(c)
	assert.Eventually(t, func() bool { return h.Clients() == 0 && c.isClosed() }, time.Second, 10*time.Millisecond)
}

func TestHub_BajaYAltaTrasDetenerNoBloquean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(zerolog.Nop())
	done := make(chan struct{})
	go func() { h.Run(ctx); close(done) }()

	c := &fakeConn{}
	h.Register(c)
	cancel()
	<-done

	returned := make(chan struct{})
	go func() {
		h.Unregister(c)
		late := &fakeConn{}
		h.Register(late)
		assert.True(t, late.isClosed())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Unregister/Register quedaron bloqueados con el hub detenido")
	}
	assert.True(t, c.isClosed())
	assert.Equal(t, 0, h.Clients())
}
