// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sync"

	"github.com/33cn/rps/types"
	uuid "github.com/google/uuid"
)

const defaultSubBuffer = 64

// notifier 进程内订阅, 订阅者处理不过来时丢弃事件, 完整的事件可以从 GetEvents 查询
type notifier struct {
	lock    sync.Mutex
	nextID  uint64
	subChan map[uint64]chan *types.Event
}

func newNotifier() *notifier {
	return &notifier{subChan: make(map[uint64]chan *types.Event)}
}

func (n *notifier) subscribe(buf int) (<-chan *types.Event, func()) {
	if buf <= 0 {
		buf = defaultSubBuffer
	}
	ch := make(chan *types.Event, buf)
	n.lock.Lock()
	id := n.nextID
	n.nextID++
	n.subChan[id] = ch
	n.lock.Unlock()

	// close 之后 subChan 中已经没有这个订阅, 不能再次关闭
	cancel := func() {
		n.lock.Lock()
		defer n.lock.Unlock()
		if _, ok := n.subChan[id]; ok {
			delete(n.subChan, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (n *notifier) publish(events []*types.Event) {
	n.lock.Lock()
	defer n.lock.Unlock()
	for _, ev := range events {
		for id, ch := range n.subChan {
			select {
			case ch <- ev:
			default:
				elog.Warn("notifier drop event", "sub", id, "event", ev.ID, "type", ev.Type)
			}
		}
	}
}

func (n *notifier) close() {
	n.lock.Lock()
	defer n.lock.Unlock()
	for id, ch := range n.subChan {
		delete(n.subChan, id)
		close(ch)
	}
}

func newEventID() string {
	return uuid.New().String()
}
