package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
)

type fixedStrategy struct {
	tag Tag
	dir t2048.Direction
}

func (s fixedStrategy) Tag() Tag { return s.tag }

func (s fixedStrategy) SelectMove(context.Context, *t2048.Grid) t2048.Direction { return s.dir }

func withRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	savedF, savedT := factories, titles
	factories = make(map[Tag]Factory)
	titles = make(map[Tag]string)
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		factories, titles = savedF, savedT
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	withRegistry(t)
	Register(TagGreedy, "Greedy", func(config.StrategiesConfig) Strategy {
		return fixedStrategy{tag: TagGreedy, dir: t2048.DirLeft}
	})

	if !Exists(TagGreedy) || Exists(TagAlphaBeta) {
		t.Fatal("Exists reports wrong membership")
	}
	s, err := Create(TagGreedy, config.Default().Strategies)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Tag() != TagGreedy || s.SelectMove(context.Background(), t2048.NewGrid(4)) != t2048.DirLeft {
		t.Errorf("created strategy %+v", s)
	}
	if Title(TagGreedy) != "Greedy" || Title("mystery") != "mystery" {
		t.Errorf("Title lookups wrong")
	}

	if _, err := Create(TagAlphaBeta, config.Default().Strategies); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("err = %v, want ErrUnknownStrategy", err)
	}
	if _, err := Parse("nope"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Parse err = %v, want ErrUnknownStrategy", err)
	}
	if tag, err := Parse("greedy"); err != nil || tag != TagGreedy {
		t.Errorf("Parse(greedy) = %q, %v", tag, err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withRegistry(t)
	f := func(config.StrategiesConfig) Strategy { return fixedStrategy{tag: TagGreedy} }
	Register(TagGreedy, "Greedy", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(TagGreedy, "Greedy again", f)
}

func TestListSorted(t *testing.T) {
	withRegistry(t)
	for _, tag := range []Tag{TagHeuristic, TagAlphaBeta, TagGreedy} {
		Register(tag, string(tag), func(config.StrategiesConfig) Strategy { return fixedStrategy{tag: tag} })
	}

	list := List()
	want := []Tag{TagAlphaBeta, TagGreedy, TagHeuristic}
	if len(list) != len(want) {
		t.Fatalf("List len = %d, want %d", len(list), len(want))
	}
	for i, info := range list {
		if info.Tag != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, info.Tag, want[i])
		}
	}
}

func TestNextCyclesThroughEveryTag(t *testing.T) {
	seen := make(map[Tag]bool)
	tag := TagGreedy
	for range len(cycle) {
		seen[tag] = true
		tag = Next(tag)
	}
	if tag != TagGreedy {
		t.Errorf("cycle did not return to start, ended at %q", tag)
	}
	if len(seen) != 4 {
		t.Errorf("cycle visited %d tags, want 4", len(seen))
	}
	if Next("unknown") != TagGreedy {
		t.Error("unknown tag should restart the cycle")
	}
}
