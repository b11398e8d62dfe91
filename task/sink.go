package task

import "github.com/clktmr/asyncirq/irq"

// SendFuture sends a single item into a sink and flushes it.
type SendFuture[T any] struct {
	sink  Sink[T]
	item  T
	state uint8
}

const (
	sendReady = iota
	sendFlushing
	sendDone
)

// Send returns a future that waits until s is ready, sends item and flushes
// s.  The result is the first error reported by s.
func Send[T any](s Sink[T], item T) SendFuture[T] {
	return SendFuture[T]{sink: s, item: item}
}

func (f *SendFuture[T]) Poll(w irq.Waker) (err error, ready bool) {
	switch f.state {
	case sendDone:
		panic(ErrPolledAfterCompletion)
	case sendReady:
		ready, err = f.sink.PollReady(w)
		if err != nil {
			f.state = sendDone
			return err, true
		}
		if !ready {
			return nil, false
		}
		if err = f.sink.StartSend(f.item); err != nil {
			f.state = sendDone
			return err, true
		}
		f.state = sendFlushing
	}

	ready, err = f.sink.PollFlush(w)
	if ready || err != nil {
		f.state = sendDone
		return err, true
	}
	return nil, false
}

// FlushFuture waits until a sink has no more items in flight.
type FlushFuture[T any] struct {
	sink  Sink[T]
	close bool
	done  bool
}

// Flush returns a future that flushes s.
func Flush[T any](s Sink[T]) FlushFuture[T] {
	return FlushFuture[T]{sink: s}
}

// Close returns a future that closes s.
func Close[T any](s Sink[T]) FlushFuture[T] {
	return FlushFuture[T]{sink: s, close: true}
}

func (f *FlushFuture[T]) Poll(w irq.Waker) (err error, ready bool) {
	if f.done {
		panic(ErrPolledAfterCompletion)
	}
	if f.close {
		ready, err = f.sink.PollClose(w)
	} else {
		ready, err = f.sink.PollFlush(w)
	}
	if ready || err != nil {
		f.done = true
		return err, true
	}
	return nil, false
}

// ForwardFuture sends every item of a stream into a sink.
type ForwardFuture[T any] struct {
	sink     Sink[T]
	stream   Stream[T]
	buffered T
	has      bool
	done     bool
}

// Forward returns a future that moves all items from src into dst.  Each item
// is handed to dst before the next one is taken from src.  It completes with
// the first error of either side; an unbounded stream without errors never
// completes.
func Forward[T any](dst Sink[T], src Stream[T]) ForwardFuture[T] {
	return ForwardFuture[T]{sink: dst, stream: src}
}

func (f *ForwardFuture[T]) Poll(w irq.Waker) (err error, ready bool) {
	if f.done {
		panic(ErrPolledAfterCompletion)
	}
	for {
		if f.has {
			ready, err = f.sink.PollReady(w)
			if err != nil {
				return f.finish(err)
			}
			if !ready {
				return nil, false
			}
			if err = f.sink.StartSend(f.buffered); err != nil {
				return f.finish(err)
			}
			var zero T
			f.buffered, f.has = zero, false
		}

		var item T
		item, ready, err = f.stream.PollNext(w)
		if err != nil {
			return f.finish(err)
		}
		if !ready {
			if _, err = f.sink.PollFlush(w); err != nil {
				return f.finish(err)
			}
			return nil, false
		}
		f.buffered, f.has = item, true
	}
}

func (f *ForwardFuture[T]) finish(err error) (error, bool) {
	f.done = true
	return err, true
}
