package measure

func NewFuture[T any]() *Future[T] {
	return newFuture[T]()
}

func (f *Future[T]) Complete(v T) {
	f.complete(v)
}

func (f *Future[T]) Abandon(reason AbandonReason) {
	f.abandon(reason)
}
