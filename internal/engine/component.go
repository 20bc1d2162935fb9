package engine

// Component is attached to an Actor and ticked with it.
type Component interface {
	Start()
	Update(deltaTime float32)
	SetActor(a *Actor)
	GetActor() *Actor
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	actor *Actor
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetActor(a *Actor) {
	b.actor = a
}

func (b *BaseComponent) GetActor() *Actor {
	return b.actor
}
