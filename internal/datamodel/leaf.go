package datamodel

// Subscriber is the weak, unowned reference a leaf holds to a session. The
// leaf never keeps a subscriber alive. Set, Remove and Increment call
// Publish only after releasing the subscription lock (grounded on
// DataModelLeaf.cpp's operator<<, which releases the subscription lock
// before the caller's publishToSubscriber touches the socket); the retained
// value sent when a subscriber first attaches is published with the lock
// still held.
type Subscriber interface {
	Publish(topic, payload string, retain bool)
}

type subscriberEntry struct {
	subscriber Subscriber
	cookie     uint32
}

// Leaf is a typed terminal node: value T, whether it has ever been set, and
// an ordered subscriber table bounded by the tree's MAX_SUBSCRIBERS. T is
// the generic rendering of the original's per-type leaf subclasses (spec
// design note: "parametric behavior over the value type and its textual
// formatter").
type Leaf[T comparable] struct {
	tree      *Tree
	name      string
	fullTopic string
	format    func(T) string
	maxSubs   int

	hasValue bool
	value    T

	subscribers []subscriberEntry
}

func newLeaf[T comparable](tree *Tree, name, fullTopic string, format func(T) string) *Leaf[T] {
	return &Leaf[T]{
		tree:      tree,
		name:      name,
		fullTopic: fullTopic,
		format:    format,
		maxSubs:   tree.maxSubscribers,
	}
}

func (l *Leaf[T]) Name() string      { return l.name }
func (l *Leaf[T]) FullTopic() string { return l.fullTopic }

// Set stores value if it differs from the current one (idempotent write)
// and, if it changed, publishes the serialized form to every subscriber with
// retain=false. The subscriber list is captured while the tree lock is held,
// then published to after releasing it, so a slow session's socket write
// never holds up every other leaf in the tree (DataModelLeaf.cpp's
// operator<< releases the subscription lock before publishToSubscriber).
func (l *Leaf[T]) Set(value T) {
	l.tree.mu.Lock()
	changed, text, subs := l.prepareSet(value)
	l.tree.mu.Unlock()
	if changed {
		publishToSubscribers(subs, l.fullTopic, text, false)
	}
}

// Remove clears hasValue and publishes the empty string with retain=true,
// after releasing the tree lock.
func (l *Leaf[T]) Remove() {
	l.tree.mu.Lock()
	var subs []subscriberEntry
	if l.hasValue {
		l.hasValue = false
		subs = l.snapshotSubscribers()
	}
	l.tree.mu.Unlock()
	if subs != nil {
		publishToSubscribers(subs, l.fullTopic, "", true)
	}
}

// HasValue reports whether the leaf has ever been set since creation or the
// last Remove.
func (l *Leaf[T]) HasValue() bool {
	l.tree.mu.Lock()
	defer l.tree.mu.Unlock()
	return l.hasValue
}

// Value returns the current value and whether it is present.
func (l *Leaf[T]) Value() (T, bool) {
	l.tree.mu.Lock()
	defer l.tree.mu.Unlock()
	return l.value, l.hasValue
}

// prepareSet mutates the leaf's value under the tree lock and returns
// whether anything changed along with the data a caller needs to publish
// once it has released the lock.
func (l *Leaf[T]) prepareSet(value T) (changed bool, text string, subs []subscriberEntry) {
	if l.hasValue && l.value == value {
		return false, "", nil
	}
	l.value = value
	l.hasValue = true
	return true, l.format(value), l.snapshotSubscribers()
}

// snapshotSubscribers copies the current subscriber table so it can be
// published to after the tree lock is released, without racing a concurrent
// subscribe/unsubscribe mutating l.subscribers in place.
func (l *Leaf[T]) snapshotSubscribers() []subscriberEntry {
	subs := make([]subscriberEntry, len(l.subscribers))
	copy(subs, l.subscribers)
	return subs
}

// publishToSubscribers calls Publish on every entry. It must run without
// the tree lock held.
func publishToSubscribers(subs []subscriberEntry, topic, text string, retained bool) {
	for _, entry := range subs {
		entry.subscriber.Publish(topic, text, retained)
	}
}

// addSubscriber appends sub if absent or updates its cookie if already
// present. It reports whether this was a new attachment.
func (l *Leaf[T]) addSubscriber(sub Subscriber, cookie uint32) (attached bool, err error) {
	for i := range l.subscribers {
		if l.subscribers[i].subscriber == sub {
			l.subscribers[i].cookie = cookie
			return false, nil
		}
	}

	if len(l.subscribers) >= l.maxSubs {
		return false, ErrSubscriberTableFull
	}

	l.subscribers = append(l.subscribers, subscriberEntry{subscriber: sub, cookie: cookie})
	return true, nil
}

func (l *Leaf[T]) removeSubscriber(sub Subscriber) {
	for i := range l.subscribers {
		if l.subscribers[i].subscriber == sub {
			l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
			return
		}
	}
}

// subscribe attaches sub and, only on first attachment, sends the retained
// value (if any). Re-subscribing with a new cookie never re-sends.
func (l *Leaf[T]) subscribe(sub Subscriber, cookie uint32) (attached bool, err error) {
	attached, err = l.addSubscriber(sub, cookie)
	if err != nil {
		return false, err
	}
	if attached && l.hasValue {
		sub.Publish(l.fullTopic, l.format(l.value), true)
	}
	return attached, nil
}

func (l *Leaf[T]) subscribeIfMatching(filter string, sub Subscriber, cookie uint32) int {
	if filter != "" && filter != "#" {
		return 0
	}
	if attached, err := l.subscribe(sub, cookie); err != nil || !attached {
		return 0
	}
	return 1
}

func (l *Leaf[T]) subscribeAll(sub Subscriber, cookie uint32) int {
	if attached, err := l.subscribe(sub, cookie); err != nil || !attached {
		return 0
	}
	return 1
}

func (l *Leaf[T]) unsubscribeIfMatching(filter string, sub Subscriber) {
	if filter == "" || filter == "#" {
		l.removeSubscriber(sub)
	}
}

func (l *Leaf[T]) unsubscribeAll(sub Subscriber) {
	l.removeSubscriber(sub)
}

// Integer bounds the leaf value types an Increment can apply to.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~int8
}

// Increment always publishes, even if the post-increment value happens to
// equal the prior one (it never does for these widths short of wraparound),
// because the read that drove the increment was itself observable.
func Increment[T Integer](l *Leaf[T]) {
	l.tree.mu.Lock()
	l.value++
	l.hasValue = true
	text := l.format(l.value)
	subs := l.snapshotSubscribers()
	l.tree.mu.Unlock()
	publishToSubscribers(subs, l.fullTopic, text, false)
}
