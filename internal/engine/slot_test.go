package engine

import (
	"image"
	"sync"
	"testing"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// checkedState is a snapshot whose checksum exposes torn reads: every
// fully formed instance satisfies sum == a + b.
type checkedState struct {
	a   uint64
	b   uint64
	sum uint64
}

func (checkedState) Draw(dst *canvas.Surface, area image.Rectangle, elapsed float64) {}

func TestSlotEmptyRead(t *testing.T) {
	var s slot

	f, ok := s.latest()
	if ok {
		t.Errorf("latest() on empty slot = %v, expected none", f)
	}
	if f != nil {
		t.Errorf("latest() on empty slot returned non-nil frame %v", f)
	}
}

func TestSlotPublishReplaces(t *testing.T) {
	var s slot

	s.publish(&Frame{Seq: 1})
	s.publish(&Frame{Seq: 2})

	f, ok := s.latest()
	if !ok {
		t.Fatal("latest() found nothing after publish")
	}
	if f.Seq != 2 {
		t.Errorf("latest().Seq = %d, expected 2", f.Seq)
	}
}

func TestSlotNeverReturnsTornFrames(t *testing.T) {
	var s slot
	var wg sync.WaitGroup
	const frames = 5000

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); i <= frames; i++ {
			s.publish(&Frame{
				Seq:     i,
				Elapsed: float64(i),
				State:   checkedState{a: i, b: i * 3, sum: i + i*3},
			})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 20000; n++ {
				f, ok := s.latest()
				if !ok {
					continue
				}
				if f.Elapsed != float64(f.Seq) {
					t.Errorf("frame %d carries elapsed %v, expected %v", f.Seq, f.Elapsed, float64(f.Seq))
					return
				}
				st := f.State.(checkedState)
				if st.sum != st.a+st.b {
					t.Errorf("torn snapshot: a=%d b=%d sum=%d", st.a, st.b, st.sum)
					return
				}
				if st.a != f.Seq {
					t.Errorf("snapshot a=%d does not match frame seq %d", st.a, f.Seq)
					return
				}
			}
		}()
	}

	wg.Wait()

	f, ok := s.latest()
	if !ok || f.Seq != frames {
		t.Errorf("final frame seq = %v, expected %d", f, frames)
	}
}
