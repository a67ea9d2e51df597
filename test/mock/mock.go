package mock

import (
	"fmt"
	"sync"

	"sgdlr/common"
)

type MockLog struct {
	Name string
}

func (l *MockLog) Debug(args ...interface{}) {
	fmt.Println(append([]interface{}{l.Name}, args...)...)
}

func (l *MockLog) Debugf(format string, args ...interface{}) {
	fmt.Printf(l.Name+" "+format+"\n", args...)
}

func (l *MockLog) Info(args ...interface{}) {
	fmt.Println(append([]interface{}{l.Name}, args...)...)
}

func (l *MockLog) Infof(format string, args ...interface{}) {
	fmt.Printf(l.Name+" "+format+"\n", args...)
}

func (l *MockLog) Warn(args ...interface{}) {
	fmt.Println(append([]interface{}{l.Name}, args...)...)
}

func (l *MockLog) Warnf(format string, args ...interface{}) {
	fmt.Printf(l.Name+" "+format+"\n", args...)
}

func (l *MockLog) Error(args ...interface{}) {
	fmt.Println(append([]interface{}{l.Name}, args...)...)
}

func (l *MockLog) Errorf(format string, args ...interface{}) {
	fmt.Printf(l.Name+" "+format+"\n", args...)
}

type Published struct {
	Type    common.LocalMsgType
	Payload interface{}
}

// MockPublisher records everything published to it.
type MockPublisher struct {
	mutex sync.Mutex
	Msgs  []Published
}

func (p *MockPublisher) Publish(t common.LocalMsgType, payload interface{}) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.Msgs = append(p.Msgs, Published{Type: t, Payload: payload})
}

func (p *MockPublisher) OfType(t common.LocalMsgType) []Published {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	var out []Published
	for _, m := range p.Msgs {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}
