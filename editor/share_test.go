package editor

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/iw2rmb/splice/buffer"
	"github.com/iw2rmb/splice/share"
)

type blockingObject struct {
	release chan struct{}
	words   []buffer.Spanned
}

func (o blockingObject) Words(ctx context.Context) ([]buffer.Spanned, error) {
	select {
	case <-o.release:
		return o.words, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestShare_InsertsWhenMessageArrives(t *testing.T) {
	m := New(Config{Text: "helloworld"})
	if err := m.buf.SetCursor(5); err != nil {
		t.Fatal(err)
	}

	obj := blockingObject{release: make(chan struct{}), words: []buffer.Spanned{buffer.Plain("X"), buffer.Plain("Y")}}
	cmd := m.Share(context.Background(), obj, share.CurrentPosition)

	msgc := make(chan any, 1)
	go func() { msgc <- cmd() }()

	if got := m.buf.Text(); got != "helloworld" {
		t.Fatalf("text before words resolved: got %q", got)
	}
	close(obj.release)

	msg := (<-msgc).(SharedMsg)
	m, _ = m.Update(msg)
	if got, want := m.buf.Text(), "hello X Y world"; got != want {
		t.Fatalf("text after share: got %q, want %q", got, want)
	}
	if got, want := m.buf.Cursor(), 10; got != want {
		t.Fatalf("cursor after share: got %d, want %d", got, want)
	}
	if m.ShareErr() != nil {
		t.Fatalf("unexpected share error: %v", m.ShareErr())
	}
}

func TestShare_UndoRevertsInsertion(t *testing.T) {
	m := New(Config{Text: "ab"})
	m, _ = m.Update(m.Share(context.Background(), share.TextObject{Text: "x"}, share.End)())
	if got, want := m.buf.Text(), "ab x"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	m.buf.Undo()
	if got, want := m.buf.Text(), "ab"; got != want {
		t.Fatalf("text after undo: got %q, want %q", got, want)
	}
}

func TestShare_ErrorLeavesBufferUntouched(t *testing.T) {
	m := New(Config{Text: "ab"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	obj := blockingObject{release: make(chan struct{})}
	m, _ = m.Update(m.Share(ctx, obj, share.End)())
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after failed share: got %q", got)
	}
	if !errors.Is(m.ShareErr(), context.Canceled) {
		t.Fatalf("share error: got %v, want context.Canceled", m.ShareErr())
	}

	m, _ = m.Update(m.Share(context.Background(), share.TextObject{}, share.End)())
	if !errors.Is(m.ShareErr(), share.ErrEmptyContent) {
		t.Fatalf("share error: got %v, want ErrEmptyContent", m.ShareErr())
	}
}

func TestShare_MessageForOtherEditorIsIgnored(t *testing.T) {
	a := New(Config{Text: "a"})
	b := New(Config{Text: "b"})

	msg := a.Share(context.Background(), share.TextObject{Text: "x"}, share.End)()
	b, _ = b.Update(msg)
	if got := b.buf.Text(); got != "b" {
		t.Fatalf("foreign share applied: got %q", got)
	}
}

func TestShare_ReadOnlyIgnoresWords(t *testing.T) {
	m := New(Config{Text: "a", ReadOnly: true})
	obj := share.URIsObject{Suris: []share.Suri{{ID: "1"}}, Thumbnails: stubThumbs{}}
	m, _ = m.Update(m.Share(context.Background(), obj, share.End)())
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("read-only share applied: got %q", got)
	}
}

type stubThumbs struct{}

func (stubThumbs) Load(context.Context, string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}
