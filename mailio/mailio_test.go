package mailio

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

func TestReadMessage(t *testing.T) {
	buf, err := ReadMessage(strings.NewReader("hello"), 5)
	if err != nil || string(buf) != "hello" {
		t.Fatalf("got %q %v, expected hello", buf, err)
	}

	_, err = ReadMessage(strings.NewReader("hello!"), 5)
	if !errors.Is(err, ErrLimit) {
		t.Fatalf("got err %v, expected ErrLimit", err)
	}

	_, err = ReadMessage(io.MultiReader(strings.NewReader("x"), errReader{}), 5)
	if err == nil || errors.Is(err, ErrLimit) || !strings.Contains(err.Error(), "reading message: broken") {
		t.Fatalf("got err %v, expected wrapped read error", err)
	}
}

type errReader struct{}

func (errReader) Read(buf []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestWorkQueue(t *testing.T) {
	prepare := func(i int) (string, error) {
		// Later items finish first.
		time.Sleep(time.Duration(20-i) * time.Millisecond)
		if i%5 == 0 {
			return "", fmt.Errorf("item %d", i)
		}
		return fmt.Sprintf("out %d", i), nil
	}

	var got []string
	process := func(in int, out string, err error) error {
		if err != nil {
			got = append(got, "error: "+err.Error())
		} else {
			got = append(got, out)
		}
		return nil
	}

	wq := NewWorkQueue(4, 8, prepare, process)
	defer wq.Stop()
	for i := 1; i <= 20; i++ {
		if err := wq.Add(i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := wq.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}

	if len(got) != 20 {
		t.Fatalf("got %d results, expected 20", len(got))
	}
	for i, s := range got {
		n := i + 1
		exp := fmt.Sprintf("out %d", n)
		if n%5 == 0 {
			exp = fmt.Sprintf("error: item %d", n)
		}
		if s != exp {
			t.Fatalf("result %d: got %q, expected %q", i, s, exp)
		}
	}
}

func TestWorkQueueProcessError(t *testing.T) {
	errStop := errors.New("stop")
	var n int
	process := func(in int, out int, err error) error {
		n++
		if in == 3 {
			return errStop
		}
		return nil
	}
	wq := NewWorkQueue(2, 2, func(i int) (int, error) { return i * 2, nil }, process)
	defer wq.Stop()

	var err error
	for i := 1; i <= 10 && err == nil; i++ {
		err = wq.Add(i)
	}
	if err == nil {
		err = wq.Finish()
	}
	if !errors.Is(err, errStop) {
		t.Fatalf("got err %v, expected errStop", err)
	}
	if n != 3 {
		t.Fatalf("processed %d items, expected 3", n)
	}
}
