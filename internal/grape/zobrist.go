package grape

import "math/rand/v2"

// 下标 = kind + numKinds*side；固定种子，哈希在进程之间可复现
var (
	zobristKeys [NumSquares][2 * numKinds]uint64
	zobristSide uint64
)

func init() {
	rng := rand.New(rand.NewPCG(0x67726170, 0x9E3779B97F4A7C15))
	for sq := range zobristKeys {
		for i := range zobristKeys[sq] {
			if i%numKinds == 0 {
				continue // KindNone 不参与
			}
			zobristKeys[sq][i] = rng.Uint64()
		}
	}
	zobristSide = rng.Uint64()
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == 0 || sq < 0 || sq >= NumSquares {
		return 0
	}
	k := int(pc.Kind())
	if k >= numKinds {
		return 0
	}
	return zobristKeys[sq][k+numKinds*int(pc.Side())]
}

// CalculateHash 从头算；走子时 Rotate 增量更新
func (p *Position) CalculateHash() uint64 {
	var h uint64
	for sq, pc := range p.Board.Squares {
		h ^= pieceHashKey(pc, sq)
	}
	if p.SideToMove == Red {
		h ^= zobristSide
	}
	return h
}

// EnsureHash 手工拼出来的 Position 可能还没有哈希
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
