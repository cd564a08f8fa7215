package registry

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/model"
)

// number of lock shards per topic space and for the connection index
const shardCount = 32

// the members of all topics hashed into this shard
type topicShard struct {
	topics map[string]map[string]api.ConnectionInterface

	mux sync.RWMutex
}

// the topics of all connections hashed into this shard
type connectionShard struct {
	memberships map[string]map[model.Topic]struct{}

	mux sync.Mutex
}

// Subscription registry with four independent topic spaces
//
// Every topic space is split into shards by the hash of the topic key, so
// operations on unrelated topics do not contend. A reverse index from
// connection to topics allows removing a connection everywhere without
// scanning all topics.
//
// Lock order is always connection shard before topic shard.
type Registry struct {
	spaces [model.TopicSpaceCount][shardCount]*topicShard

	connections [shardCount]*connectionShard
}

func NewRegistry() *Registry {
	r := &Registry{}

	for space := range r.spaces {
		for i := range r.spaces[space] {
			r.spaces[space][i] = &topicShard{
				topics: make(map[string]map[string]api.ConnectionInterface),
			}
		}
	}

	for i := range r.connections {
		r.connections[i] = &connectionShard{
			memberships: make(map[string]map[model.Topic]struct{}),
		}
	}

	return r
}

func shardIndex(key string) uint64 {
	return xxhash.Sum64String(key) % shardCount
}

func (r *Registry) topicShard(topic model.Topic) *topicShard {
	return r.spaces[topic.Space()][shardIndex(topic.Key())]
}

func (r *Registry) connectionShard(connID string) *connectionShard {
	return r.connections[shardIndex(connID)]
}

// Subscribe adds the connection to the topic
//
// Subscribing twice keeps a single membership.
// Returns false if the connection already was a member.
func (r *Registry) Subscribe(topic model.Topic, conn api.ConnectionInterface) bool {
	connID := conn.ID()

	cShard := r.connectionShard(connID)
	cShard.mux.Lock()
	defer cShard.mux.Unlock()

	topics, ok := cShard.memberships[connID]
	if !ok {
		topics = make(map[model.Topic]struct{})
		cShard.memberships[connID] = topics
	}
	if _, exists := topics[topic]; exists {
		return false
	}
	topics[topic] = struct{}{}

	tShard := r.topicShard(topic)
	tShard.mux.Lock()
	defer tShard.mux.Unlock()

	members, ok := tShard.topics[topic.Key()]
	if !ok {
		members = make(map[string]api.ConnectionInterface)
		tShard.topics[topic.Key()] = members
	}
	members[connID] = conn

	return true
}

// Unsubscribe removes the connection from the topic
//
// Unsubscribing a non member is a no-op.
// Returns false if the connection was not a member.
func (r *Registry) Unsubscribe(topic model.Topic, conn api.ConnectionInterface) bool {
	connID := conn.ID()

	cShard := r.connectionShard(connID)
	cShard.mux.Lock()
	defer cShard.mux.Unlock()

	topics, ok := cShard.memberships[connID]
	if !ok {
		return false
	}
	if _, exists := topics[topic]; !exists {
		return false
	}
	delete(topics, topic)
	if len(topics) == 0 {
		delete(cShard.memberships, connID)
	}

	r.removeMember(topic, connID)

	return true
}

// remove a connection from a topic, drop the topic if it is empty afterwards
func (r *Registry) removeMember(topic model.Topic, connID string) {
	tShard := r.topicShard(topic)
	tShard.mux.Lock()
	defer tShard.mux.Unlock()

	members, ok := tShard.topics[topic.Key()]
	if !ok {
		return
	}

	delete(members, connID)
	if len(members) == 0 {
		delete(tShard.topics, topic.Key())
	}
}

// MembersOf returns a snapshot of the connections subscribed to the topic
//
// The result is safe to iterate while the registry is modified
func (r *Registry) MembersOf(topic model.Topic) []api.ConnectionInterface {
	tShard := r.topicShard(topic)
	tShard.mux.RLock()
	defer tShard.mux.RUnlock()

	members := tShard.topics[topic.Key()]
	result := make([]api.ConnectionInterface, 0, len(members))
	for _, conn := range members {
		result = append(result, conn)
	}

	return result
}

// Count returns the number of connections subscribed to the topic
func (r *Registry) Count(topic model.Topic) int {
	tShard := r.topicShard(topic)
	tShard.mux.RLock()
	defer tShard.mux.RUnlock()

	return len(tShard.topics[topic.Key()])
}

// HasMembers reports if at least one connection is subscribed to the topic
func (r *Registry) HasMembers(topic model.Topic) bool {
	return r.Count(topic) > 0
}

// IsMember reports if the connection is subscribed to the topic
func (r *Registry) IsMember(topic model.Topic, conn api.ConnectionInterface) bool {
	tShard := r.topicShard(topic)
	tShard.mux.RLock()
	defer tShard.mux.RUnlock()

	_, ok := tShard.topics[topic.Key()][conn.ID()]
	return ok
}

// TopicsOf returns all topics the connection is subscribed to
func (r *Registry) TopicsOf(conn api.ConnectionInterface) []model.Topic {
	connID := conn.ID()

	cShard := r.connectionShard(connID)
	cShard.mux.Lock()
	defer cShard.mux.Unlock()

	topics := cShard.memberships[connID]
	result := make([]model.Topic, 0, len(topics))
	for topic := range topics {
		result = append(result, topic)
	}

	return result
}

// RemoveEverywhere removes the connection from every topic of every space
//
// Calling it again, or for a connection without memberships, is a no-op.
// Returns the number of removed memberships.
func (r *Registry) RemoveEverywhere(conn api.ConnectionInterface) int {
	connID := conn.ID()

	cShard := r.connectionShard(connID)
	cShard.mux.Lock()
	defer cShard.mux.Unlock()

	topics, ok := cShard.memberships[connID]
	if !ok {
		return 0
	}
	delete(cShard.memberships, connID)

	for topic := range topics {
		r.removeMember(topic, connID)
	}

	return len(topics)
}

// TopicCount returns the number of topics with at least one member in a space
func (r *Registry) TopicCount(space model.TopicSpace) int {
	count := 0
	for _, tShard := range r.spaces[space] {
		tShard.mux.RLock()
		count += len(tShard.topics)
		tShard.mux.RUnlock()
	}

	return count
}
