package snapcache

import (
	"container/list"
)

// orderedStore maps keys to entries while maintaining a recency order.
// Front of the list is the most recently used entry, back the least.
// It is not safe for concurrent use; the cache facade serializes access.
type orderedStore[V any] struct {
	elems map[string]*list.Element
	order *list.List
}

func newOrderedStore[V any]() *orderedStore[V] {
	return &orderedStore[V]{
		elems: make(map[string]*list.Element),
		order: list.New(),
	}
}

// get returns the entry without modifying recency. Moving an entry to the
// front is a separate, explicit step via touch, performed only on a
// successful non-expired read.
func (s *orderedStore[V]) get(key string) (*Entry[V], bool) {
	element, ok := s.elems[key]
	if !ok {
		return nil, false
	}
	return element.Value.(*Entry[V]), true
}

// touch moves the key to the most recently used position.
func (s *orderedStore[V]) touch(key string) {
	if element, ok := s.elems[key]; ok {
		s.order.MoveToFront(element)
	}
}

// put inserts or replaces an entry at the most recently used position.
// Replacing removes the old recency position first.
func (s *orderedStore[V]) put(entry *Entry[V]) {
	if element, ok := s.elems[entry.Key]; ok {
		element.Value = entry
		s.order.MoveToFront(element)
		return
	}
	s.elems[entry.Key] = s.order.PushFront(entry)
}

// remove deletes the key and its recency position. It reports whether the
// key was present.
func (s *orderedStore[V]) remove(key string) bool {
	element, ok := s.elems[key]
	if !ok {
		return false
	}
	s.order.Remove(element)
	delete(s.elems, key)
	return true
}

// oldest returns the least recently used entry.
func (s *orderedStore[V]) oldest() (*Entry[V], bool) {
	element := s.order.Back()
	if element == nil {
		return nil, false
	}
	return element.Value.(*Entry[V]), true
}

// entries returns all entries least recently used first. The slice is a
// copy of the current order, so callers may remove entries while ranging
// over it.
func (s *orderedStore[V]) entries() []*Entry[V] {
	result := make([]*Entry[V], 0, s.order.Len())
	for element := s.order.Back(); element != nil; element = element.Prev() {
		result = append(result, element.Value.(*Entry[V]))
	}
	return result
}

// keys returns all keys least recently used first.
func (s *orderedStore[V]) keys() []string {
	result := make([]string, 0, s.order.Len())
	for element := s.order.Back(); element != nil; element = element.Prev() {
		result = append(result, element.Value.(*Entry[V]).Key)
	}
	return result
}

func (s *orderedStore[V]) len() int {
	return s.order.Len()
}

func (s *orderedStore[V]) clear() {
	s.elems = make(map[string]*list.Element)
	s.order = list.New()
}
