package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/truthcheck/truthcheck/internal/core/model"
)

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key("the moon is made of cheese"), Key("the moon is made of cheese"))
	assert.NotEqual(t, Key("a"), Key("b"))
	assert.Len(t, Key("anything"), 64)
}

func TestGetOrCompute_ComputesOnceThenHits(t *testing.T) {
	c := New(16)
	calls := 0
	fn := func() (model.Verdict, error) {
		calls++
		return model.Verdict{Label: model.VerdictTrue, Confidence: 0.9}, nil
	}

	v1, hit1, err := c.GetOrCompute("k", fn)
	assert.NoError(t, err)
	assert.False(t, hit1)

	v2, hit2, err := c.GetOrCompute("k", fn)
	assert.NoError(t, err)
	assert.True(t, hit2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, v1, v2)
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New(16)
	calls := 0

	_, _, err := c.GetOrCompute("k", func() (model.Verdict, error) {
		calls++
		return model.Verdict{}, fmt.Errorf("boom")
	})
	assert.Error(t, err)

	v, hit, err := c.GetOrCompute("k", func() (model.Verdict, error) {
		calls++
		return model.Verdict{Label: model.VerdictFalse, Confidence: 0.8}, nil
	})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, model.VerdictFalse, v.Label)
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_ConcurrentSingleWinner(t *testing.T) {
	c := New(16)
	var calls int64

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.GetOrCompute("k", func() (model.Verdict, error) {
				atomic.AddInt64(&calls, 1)
				return model.Verdict{Label: model.VerdictTrue, Confidence: 1.0}, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, model.VerdictTrue, v.Label)
		}()
	}
	wg.Wait()

	// singleflight collapses concurrent callers; duplicate computation
	// is tolerable across flights but every caller saw a valid verdict.
	assert.LessOrEqual(t, atomic.LoadInt64(&calls), int64(2))
	assert.Equal(t, 1, c.Len())
}

func TestEviction(t *testing.T) {
	c := New(2)
	mk := func(label model.VerdictLabel) func() (model.Verdict, error) {
		return func() (model.Verdict, error) { return model.Verdict{Label: label}, nil }
	}

	c.GetOrCompute("a", mk(model.VerdictTrue))
	c.GetOrCompute("b", mk(model.VerdictTrue))
	c.GetOrCompute("c", mk(model.VerdictTrue)) // evicts "a"

	assert.Equal(t, 2, c.Len())
	_, hit, _ := c.GetOrCompute("a", mk(model.VerdictFalse))
	assert.False(t, hit)
}

func TestUnboundedWhenCapacityZero(t *testing.T) {
	c := New(0)
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("k%d", i)
		c.GetOrCompute(key, func() (model.Verdict, error) {
			return model.Verdict{Label: model.VerdictTrue}, nil
		})
	}
	assert.Equal(t, 100, c.Len())
}
