package swirl

import (
	"reflect"
)

// Queries iterate every entity whose archetype contains all requested
// component types, handing out pointers into the archetype columns.
// Returning false from the map function stops the iteration.

type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{ecs: cmd.app.ecs}
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.componentIdFor(reflect.TypeOf((*T)(nil)).Elem())
}

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	idA := componentIdOf[A](q.ecs)

	for _, arch := range q.ecs.archetypes {
		colA, ok := arch.columns[idA].([]A)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, &colA[r]) {
				return
			}
		}
	}
}

func (q Query1[A]) Count() int {
	idA := componentIdOf[A](q.ecs)

	count := 0
	for _, arch := range q.ecs.archetypes {
		if _, ok := arch.columns[idA].([]A); ok {
			count += len(arch.entities)
		}
	}
	return count
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	idA := componentIdOf[A](q.ecs)
	idB := componentIdOf[B](q.ecs)

	for _, arch := range q.ecs.archetypes {
		colA, ok := arch.columns[idA].([]A)
		if !ok {
			continue
		}
		colB, ok := arch.columns[idB].([]B)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, &colA[r], &colB[r]) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Count() int {
	idA := componentIdOf[A](q.ecs)
	idB := componentIdOf[B](q.ecs)

	count := 0
	for _, arch := range q.ecs.archetypes {
		if _, ok := arch.columns[idA].([]A); !ok {
			continue
		}
		if _, ok := arch.columns[idB].([]B); !ok {
			continue
		}
		count += len(arch.entities)
	}
	return count
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	idA := componentIdOf[A](q.ecs)
	idB := componentIdOf[B](q.ecs)
	idC := componentIdOf[C](q.ecs)

	for _, arch := range q.ecs.archetypes {
		colA, ok := arch.columns[idA].([]A)
		if !ok {
			continue
		}
		colB, ok := arch.columns[idB].([]B)
		if !ok {
			continue
		}
		colC, ok := arch.columns[idC].([]C)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, &colA[r], &colB[r], &colC[r]) {
				return
			}
		}
	}
}
