package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register(t *testing.T) {
	r := NewHandlerRegistry()
	h := &recordingHandler{}

	r.Register(h, "OrderCreated", "OrderStatusChanged")
	r.Register(h, "OrderCreated")

	assert.Len(t, r.GetHandlers("OrderCreated"), 1)
	assert.Len(t, r.GetHandlers("OrderStatusChanged"), 1)
	assert.Empty(t, r.GetHandlers("PackageCreated"))
	assert.Equal(t, []string{"OrderCreated", "OrderStatusChanged"}, r.EventTypes())
}

func TestHandlerRegistry_Wildcard(t *testing.T) {
	r := NewHandlerRegistry()
	typed := &recordingHandler{}
	all := &recordingHandler{}

	r.Register(typed, "OrderCreated")
	r.Register(all)
	r.Register(all)

	handlers := r.GetHandlers("OrderCreated")
	assert.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, all, handlers[1])
	assert.Len(t, r.GetHandlers("Anything"), 1)
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	r := NewHandlerRegistry()
	a := &recordingHandler{}
	b := &recordingHandler{}
	r.Register(a, "OrderCreated", "PackageCreated")
	r.Register(b, "OrderCreated")
	r.Register(a)

	r.Unregister(a)

	assert.Len(t, r.GetHandlers("OrderCreated"), 1)
	assert.Empty(t, r.GetHandlers("PackageCreated"))
	assert.Equal(t, []string{"OrderCreated"}, r.EventTypes())
}

func TestHandlerRegistry_GetHandlersReturnsCopy(t *testing.T) {
	r := NewHandlerRegistry()
	r.Register(&recordingHandler{}, "X")

	handlers := r.GetHandlers("X")
	handlers[0] = nil

	assert.NotNil(t, r.GetHandlers("X")[0])
}
