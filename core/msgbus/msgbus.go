package msgbus

import (
	"sync"
	"sync/atomic"

	"sgdlr/common"
)

var defaultTopicSize int = 100

type BusMessage struct {
	MsgType common.LocalMsgType
	Msg     interface{}
}

type Subscriber interface {
	HandleMsgFromMsgBus(msg *BusMessage) error
}

type MessageBus interface {
	Register(topic common.LocalMsgType, sub Subscriber)
	UnRegister(topic common.LocalMsgType, sub Subscriber)
	Publish(t common.LocalMsgType, payload interface{})
	Reset()
}

type Topic interface {
	Register(sub Subscriber)
	UnRegister(sub Subscriber)
	Publish(msg *BusMessage)
	Stop()
}

type topicImpl struct {
	msgChan chan *BusMessage
	subs    atomic.Value //[]Subscriber
	mutex   sync.Mutex

	closeMu sync.RWMutex
	closed  bool
	done    chan struct{}
}

func newTopic(size int) Topic {
	t := &topicImpl{
		msgChan: make(chan *BusMessage, size),
		done:    make(chan struct{}),
	}
	t.subs.Store([]Subscriber{})
	go t.handlePublish()
	return t
}

func (t *topicImpl) Register(sub Subscriber) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subs := t.subs.Load().([]Subscriber)
	for _, s := range subs {
		if s == sub {
			return
		}
	}
	newSubs := make([]Subscriber, 0, len(subs)+1)
	newSubs = append(newSubs, subs...)
	t.subs.Store(append(newSubs, sub))
}

func (t *topicImpl) UnRegister(sub Subscriber) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subs := t.subs.Load().([]Subscriber)
	for i, s := range subs {
		if s == sub {
			newSubs := make([]Subscriber, 0, len(subs)-1)
			newSubs = append(newSubs, subs[:i]...)
			t.subs.Store(append(newSubs, subs[i+1:]...))
			return
		}
	}
}

// Publish blocks while the topic buffer is full, so messages reach
// subscribers in publish order. Messages published after Stop are dropped.
func (t *topicImpl) Publish(msg *BusMessage) {
	t.closeMu.RLock()
	defer t.closeMu.RUnlock()
	if t.closed {
		return
	}
	t.msgChan <- msg
}

// Stop closes the topic and waits until every queued message is handled.
// It waits for in-flight Publish calls; calling it twice is a no-op.
func (t *topicImpl) Stop() {
	t.closeMu.Lock()
	if t.closed {
		t.closeMu.Unlock()
		return
	}
	t.closed = true
	close(t.msgChan)
	t.closeMu.Unlock()
	<-t.done
}

func (t *topicImpl) handlePublish() {
	defer close(t.done)
	for msg := range t.msgChan {
		subs := t.subs.Load().([]Subscriber)
		for _, sub := range subs {
			_ = sub.HandleMsgFromMsgBus(msg)
		}
	}
}

type messageBusImpl struct {
	mutex  sync.Mutex
	topics map[common.LocalMsgType]Topic
}

func NewMessageBus() MessageBus {
	return &messageBusImpl{topics: make(map[common.LocalMsgType]Topic)}
}

func (mb *messageBusImpl) Register(topic common.LocalMsgType, sub Subscriber) {
	mb.mutex.Lock()
	defer mb.mutex.Unlock()

	firstClassTopic := topic.Type()
	t, ok := mb.topics[firstClassTopic]
	if !ok {
		t = newTopic(defaultTopicSize)
		mb.topics[firstClassTopic] = t
	}
	t.Register(sub)
}

func (mb *messageBusImpl) UnRegister(topic common.LocalMsgType, sub Subscriber) {
	mb.mutex.Lock()
	defer mb.mutex.Unlock()

	if t, ok := mb.topics[topic.Type()]; ok {
		t.UnRegister(sub)
	}
}

// Publish drops messages for topics nobody registered for.
func (mb *messageBusImpl) Publish(topic common.LocalMsgType, msg interface{}) {
	mb.mutex.Lock()
	t, ok := mb.topics[topic.Type()]
	mb.mutex.Unlock()
	if !ok {
		return
	}
	t.Publish(&BusMessage{MsgType: topic, Msg: msg})
}

// Reset drains and stops every topic.
func (mb *messageBusImpl) Reset() {
	mb.mutex.Lock()
	topics := mb.topics
	mb.topics = make(map[common.LocalMsgType]Topic)
	mb.mutex.Unlock()

	for _, t := range topics {
		t.Stop()
	}
}

var singletonMessageBus MessageBus
var once sync.Once

func InitMessageBus() MessageBus {
	once.Do(func() {
		singletonMessageBus = NewMessageBus()
	})
	return singletonMessageBus
}

func Register(topic common.LocalMsgType, sub Subscriber) {
	InitMessageBus().Register(topic, sub)
}

func UnRegister(topic common.LocalMsgType, sub Subscriber) {
	InitMessageBus().UnRegister(topic, sub)
}

func Publish(topic common.LocalMsgType, msg interface{}) {
	InitMessageBus().Publish(topic, msg)
}

func Reset() {
	InitMessageBus().Reset()
}
