// Package core1 runs background pin jobs off the console loop, fed
// through a small bounded queue. On the Pico this models the second
// core; on a workstation it is just a goroutine.
package core1

import (
	"time"

	"picocli-go/device"
	"picocli-go/logx"
)

// QueueDepth bounds pending background jobs.
const QueueDepth = 8

// Event is one background job. Only blinking is wired today.
type Event struct {
	Times    uint32
	Interval time.Duration
}

// Queue is a non-blocking bounded event channel. Producers on the
// console loop must never stall behind a slow worker.
type Queue struct {
	ch chan Event
}

func NewQueue() *Queue {
	return &Queue{ch: make(chan Event, QueueDepth)}
}

// TryEnqueue reports false when the queue is full.
func (q *Queue) TryEnqueue(e Event) bool {
	select {
	case q.ch <- e:
		return true
	default:
		return false
	}
}

// TryDequeue reports false when the queue is empty.
func (q *Queue) TryDequeue() (Event, bool) {
	select {
	case e := <-q.ch:
		return e, true
	default:
		return Event{}, false
	}
}

func (q *Queue) Len() int { return len(q.ch) }

// Worker drains the queue and drives its output pin.
type Worker struct {
	queue *Queue
	out   device.OutPin
}

func NewWorker(queue *Queue, out device.OutPin) *Worker {
	return &Worker{queue: queue, out: out}
}

// Start launches the drain loop. It runs until stop closes.
func (w *Worker) Start(stop <-chan struct{}) {
	go w.run(stop)
}

func (w *Worker) run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case e := <-w.queue.ch:
			logx.Debugf("core1: blink times=%d interval=%d ms", e.Times, e.Interval.Milliseconds())
			w.blink(e, stop)
		}
	}
}

func (w *Worker) blink(e Event, stop <-chan struct{}) {
	interval := e.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	for i := uint32(0); i < e.Times; i++ {
		w.out.High()
		if !sleepOrStop(interval, stop) {
			break
		}
		w.out.Low()
		if !sleepOrStop(interval, stop) {
			break
		}
	}
	w.out.Low()
}

func sleepOrStop(d time.Duration, stop <-chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-stop:
		return false
	case <-t.C:
		return true
	}
}
