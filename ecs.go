package swirl

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type componentId uint32
type archetypeId uint64

// archetypeKey is the sorted, deduplicated list of component ids that
// defines an archetype. The archetypeId is an fnv hash of the key.
type archetypeKey []componentId

type row int

type Ecs struct {
	archetypes  map[archetypeId]*archetype
	entityIndex map[EntityId]archetypeId

	mu              sync.Mutex
	entityIdCounter EntityId

	componentIdCounter componentId
	componentTypeIds   map[reflect.Type]componentId
	componentIdTypes   map[componentId]reflect.Type
}

// archetype stores one column per component type; each column is a typed
// slice held as any and accessed via reflection. Rows freed by entity
// removal are recycled before the columns grow.
type archetype struct {
	id       archetypeId
	key      archetypeKey
	entities map[EntityId]row
	columns  map[componentId]any
	recycled []row
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes:       make(map[archetypeId]*archetype),
		entityIndex:      make(map[EntityId]archetypeId),
		componentTypeIds: make(map[reflect.Type]componentId),
		componentIdTypes: make(map[componentId]reflect.Type),
	}
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.mu.Lock()
	defer ecs.mu.Unlock()

	id := ecs.entityIdCounter
	ecs.entityIdCounter++
	return id
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	key := ecs.archetypeKeyFor(components...)
	archId, arch := ecs.getOrMakeArchetype(key)

	r := ecs.reserveRow(arch)
	arch.entities[entityId] = r
	for _, component := range components {
		ecs.writeComponent(arch, r, component)
	}
	ecs.entityIndex[entityId] = archId

	return entityId
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return
	}
	arch := ecs.archetypes[archId]

	r := arch.entities[entityId]
	arch.recycled = append(arch.recycled, r)

	delete(arch.entities, entityId)
	delete(ecs.entityIndex, entityId)
}

func (ecs *Ecs) entityCount() int {
	return len(ecs.entityIndex)
}

func (ecs *Ecs) writeComponent(arch *archetype, r row, component any) {
	componentType := reflect.TypeOf(component)
	value := reflect.ValueOf(component)
	if componentType.Kind() == reflect.Pointer {
		componentType = componentType.Elem()
		value = value.Elem()
	}
	if componentType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("component must be a struct or pointer to struct, got %s", componentType.Kind()))
	}

	id := ecs.componentIdFor(componentType)
	reflect.ValueOf(arch.columns[id]).Index(int(r)).Set(value)
}

func (ecs *Ecs) reserveRow(arch *archetype) row {
	if n := len(arch.recycled); n > 0 {
		r := arch.recycled[n-1]
		arch.recycled = arch.recycled[:n-1]
		return r
	}

	r := row(len(arch.entities))
	for _, id := range arch.key {
		column := reflect.ValueOf(arch.columns[id])
		arch.columns[id] = reflect.Append(column, reflect.Zero(ecs.componentIdTypes[id])).Interface()
	}
	return r
}

func (ecs *Ecs) getOrMakeArchetype(key archetypeKey) (archetypeId, *archetype) {
	id := hashArchetypeKey(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return id, arch
	}

	arch := &archetype{
		id:       id,
		key:      key,
		entities: make(map[EntityId]row),
		columns:  make(map[componentId]any),
	}
	for _, compId := range key {
		elem := ecs.componentIdTypes[compId]
		arch.columns[compId] = reflect.MakeSlice(reflect.SliceOf(elem), 0, 1).Interface()
	}
	ecs.archetypes[id] = arch
	return id, arch
}

func (ecs *Ecs) archetypeKeyFor(components ...any) archetypeKey {
	seen := make(map[componentId]struct{}, len(components))
	key := make(archetypeKey, 0, len(components))
	for _, component := range components {
		compType := reflect.TypeOf(component)
		if compType.Kind() == reflect.Pointer {
			compType = compType.Elem()
		}
		if compType.Kind() != reflect.Struct {
			panic("component must be a struct")
		}

		id := ecs.componentIdFor(compType)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		key = append(key, id)
	}
	slices.Sort(key)
	return key
}

func hashArchetypeKey(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	var b [8]byte
	for _, id := range key {
		binary.LittleEndian.PutUint64(b[:], uint64(id))
		hash.Write(b[:])
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) componentIdFor(componentType reflect.Type) componentId {
	ecs.mu.Lock()
	defer ecs.mu.Unlock()

	if id, ok := ecs.componentTypeIds[componentType]; ok {
		return id
	}
	id := ecs.componentIdCounter
	ecs.componentIdCounter++
	ecs.componentTypeIds[componentType] = id
	ecs.componentIdTypes[id] = componentType
	return id
}
