// Package sentences 维护例句池：固定例句集合上的随机轮换序列，
// 保证整轮取完之前不会重复。
package sentences

import (
	"fmt"
	"math/rand"
)

// Pool 持有一份打乱后的例句序列与位置索引。随机数源由调用方注入，
// 测试中给定固定种子即可得到确定性的输出。
type Pool struct {
	queue []string
	index int
	rnd   *rand.Rand
}

// NewPool 用给定例句与随机数源创建例句池。例句列表在内部复制并立即打乱，
// 调用方之后修改原切片不会影响池。空列表是配置错误，直接拒绝。
func NewPool(list []string, rnd *rand.Rand) (*Pool, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("例句列表为空")
	}
	if rnd == nil {
		return nil, fmt.Errorf("缺少随机数源")
	}
	p := &Pool{
		queue: append([]string(nil), list...),
		rnd:   rnd,
	}
	p.shuffle()
	return p, nil
}

// Next 返回下一条例句。索引每跨过一轮（len 的整数倍）就地重新洗牌，
// 因此任何一轮内每条例句恰好出现一次。
// 已知局限：池中所有例句都相同时（包括大小为 1），每次都返回同一条。
func (p *Pool) Next() string {
	s := p.queue[p.index%len(p.queue)]
	p.index++
	if p.index%len(p.queue) == 0 {
		p.reshuffle()
	}
	return s
}

// Len 返回池中例句的数量。
func (p *Pool) Len() int { return len(p.queue) }

func (p *Pool) shuffle() {
	p.rnd.Shuffle(len(p.queue), func(i, j int) {
		p.queue[i], p.queue[j] = p.queue[j], p.queue[i]
	})
}

// reshuffle 换一轮新的排列，且避免与上一轮完全相同。
// 元素全部相同的池不存在第二种排列，洗一次就返回，不做比较。
func (p *Pool) reshuffle() {
	if allEqual(p.queue) {
		return
	}
	prev := append([]string(nil), p.queue...)
	p.shuffle()
	for equal(p.queue, prev) {
		p.shuffle()
	}
}

// allEqual 判断列表中的元素是否全部相同（含重复例句的退化情况）。
func allEqual(list []string) bool {
	for _, s := range list[1:] {
		if s != list[0] {
			return false
		}
	}
	return true
}

func equal(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
