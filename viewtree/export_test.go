package viewtree

// Blockは、ディスパッチ用のゴルーチンを停止させます。releaseを呼び出すと再開します。
func (t *Tree) Block() (release func()) {
	started := make(chan struct{})
	ch := make(chan struct{})
	t.dispatcher.Add(func() {
		close(started)
		<-ch
	})
	<-started
	return func() { close(ch) }
}

func (t *Tree) QueueLen() int {
	return t.dispatcher.Len()
}
