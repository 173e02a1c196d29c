package sentences

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func newTestPool(t *testing.T, list []string, seed int64) *Pool {
	t.Helper()
	p, err := NewPool(list, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("创建例句池失败: %v", err)
	}
	return p
}

func take(p *Pool, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, p.Next())
	}
	return out
}

// TestRoundCoversAll 断言：连续取 N 次恰好覆盖全部 N 条例句，每条一次。
func TestRoundCoversAll(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	p := newTestPool(t, list, 1)

	got := take(p, len(list))
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	if !reflect.DeepEqual(sorted, list) {
		t.Fatalf("一轮未覆盖全部例句: %v", got)
	}
}

// TestMultipleRoundsCounts 断言：取 M*N 次后每条例句恰好出现 M 次。
func TestMultipleRoundsCounts(t *testing.T) {
	list := []string{"a", "b", "c", "d"}
	const rounds = 7
	p := newTestPool(t, list, 2)

	counts := map[string]int{}
	for _, s := range take(p, rounds*len(list)) {
		counts[s]++
	}
	for _, s := range list {
		if counts[s] != rounds {
			t.Fatalf("例句 %q 出现 %d 次，期望 %d 次", s, counts[s], rounds)
		}
	}
}

// TestReshuffleAcrossBoundary 断言：跨轮取句时计数仍然正确，
// 且相邻两轮的排列不会完全相同。
func TestReshuffleAcrossBoundary(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	p := newTestPool(t, list, 3)

	// 12 次 = 两整轮零头两条：前 5 与后 5 各是一个排列。
	got := take(p, 12)
	round1 := got[:5]
	round2 := got[5:10]
	if reflect.DeepEqual(round1, round2) {
		t.Fatalf("相邻两轮排列相同: %v", round1)
	}
	counts := map[string]int{}
	for _, s := range got {
		counts[s]++
	}
	for _, s := range list {
		if counts[s] < 2 || counts[s] > 3 {
			t.Fatalf("跨轮计数异常: %q 出现 %d 次", s, counts[s])
		}
	}
}

// TestSingleSentence 记录池大小为 1 时的已知局限：每次返回同一条。
func TestSingleSentence(t *testing.T) {
	p := newTestPool(t, []string{"única"}, 4)
	for i := 0; i < 5; i++ {
		if got := p.Next(); got != "única" {
			t.Fatalf("单句池返回了 %q", got)
		}
	}
}

// TestDuplicateOnlySentences 断言：全部重复的例句池跨轮取句能正常返回，
// 不会因为找不到不同的排列而卡住。
func TestDuplicateOnlySentences(t *testing.T) {
	p := newTestPool(t, []string{"igual", "igual"}, 6)
	for i := 0; i < 6; i++ {
		if got := p.Next(); got != "igual" {
			t.Fatalf("重复例句池返回了 %q", got)
		}
	}
}

// TestDuplicateMixedSentences 断言：含重复但不全相同的池保持每轮计数正确。
func TestDuplicateMixedSentences(t *testing.T) {
	p := newTestPool(t, []string{"a", "a", "b"}, 7)
	counts := map[string]int{}
	for _, s := range take(p, 9) {
		counts[s]++
	}
	if counts["a"] != 6 || counts["b"] != 3 {
		t.Fatalf("重复例句计数异常: %v", counts)
	}
}

// TestSeedDeterminism 断言：相同种子产生完全相同的例句序列。
func TestSeedDeterminism(t *testing.T) {
	list := Catalan()
	a := take(newTestPool(t, list, 42), 3*len(list))
	b := take(newTestPool(t, list, 42), 3*len(list))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("相同种子的序列不一致")
	}
}

func TestNewPoolRejectsBadInput(t *testing.T) {
	if _, err := NewPool(nil, rand.New(rand.NewSource(1))); err == nil {
		t.Fatalf("空列表应报错")
	}
	if _, err := NewPool([]string{"a"}, nil); err == nil {
		t.Fatalf("缺少随机数源应报错")
	}
}

// TestPoolCopiesInput 断言：创建后修改原切片不影响池。
func TestPoolCopiesInput(t *testing.T) {
	list := []string{"a", "b", "c"}
	p := newTestPool(t, list, 5)
	list[0], list[1], list[2] = "x", "y", "z"

	for _, s := range take(p, 3) {
		if s == "x" || s == "y" || s == "z" {
			t.Fatalf("池受到了外部切片修改的影响: %q", s)
		}
	}
}

// TestCatalanDefaults 验证内置例句集非空且返回的是副本。
func TestCatalanDefaults(t *testing.T) {
	a := Catalan()
	if len(a) == 0 {
		t.Fatalf("内置例句集为空")
	}
	a[0] = "modificada"
	if b := Catalan(); b[0] == "modificada" {
		t.Fatalf("Catalan() 未返回副本")
	}
}
