package main

import (
	"encoding/gob"
	"net"
	"sync"

	"github.com/stewi1014/gldemos/programs"
)

func init() {
	gob.Register(&programs.Scene{})
	gob.Register(&Select{})
	gob.Register(&SaveFrame{})
}

// Select asks the render window to switch demo. Scene carries the scene the
// demo starts from.
type Select struct {
	Program int
	Scene   programs.Scene
}

// SaveFrame asks the render window to write its next frame to Path as PNG.
type SaveFrame struct {
	Path string
}

// NewPipeListener returns both ends of an in-process connection. The
// listener hands out its end exactly once.
func NewPipeListener() (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()
	return clientPipe, &pipeListener{
		pipe: listenerPipe,
		done: make(chan struct{}),
	}
}

type pipeListener struct {
	mu       sync.Mutex
	pipe     net.Conn
	accepted bool
	done     chan struct{}
	closed   bool
}

func (p *pipeListener) Accept() (net.Conn, error) {
	p.mu.Lock()
	if !p.accepted && !p.closed {
		p.accepted = true
		p.mu.Unlock()
		return p.pipe, nil
	}
	p.mu.Unlock()

	<-p.done
	return nil, net.ErrClosed
}

func (p *pipeListener) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	return p.pipe.Close()
}

func (p *pipeListener) Addr() net.Addr {
	return p.pipe.LocalAddr()
}

// messenger moves gob messages over a connection. Sent messages are queued
// so GTK callbacks never block on the peer.
type messenger struct {
	conn net.Conn
	send chan any
	quit func(error)
}

func newMessenger(conn net.Conn, quit func(error)) *messenger {
	return &messenger{
		conn: conn,
		send: make(chan any, 16),
		quit: quit,
	}
}

// Send queues msg, dropping it if the queue is full.
func (m *messenger) Send(msg any) {
	select {
	case m.send <- msg:
	default:
	}
}

// run encodes queued messages until done is closed or the connection fails.
func (m *messenger) run(done <-chan struct{}) {
	enc := gob.NewEncoder(m.conn)
	defer m.conn.Close()

	for {
		select {
		case msg := <-m.send:
			if err := enc.Encode(&msg); err != nil {
				m.quit(err)
				return
			}
		case <-done:
			return
		}
	}
}

// receive decodes messages and passes each to handle until the connection
// fails.
func (m *messenger) receive(handle func(msg any)) {
	dec := gob.NewDecoder(m.conn)
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			m.quit(err)
			return
		}
		handle(v)
	}
}
