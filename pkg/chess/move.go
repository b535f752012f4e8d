package chess

import "fmt"

// Move is a from/to square pair. Promotion is not represented — this
// engine never produces one.
type Move struct {
	Src, Dst Position
}

func (m Move) String() string {
	return fmt.Sprintf("%v%v-%v%v", file(m.Src.X), m.Src.Y+1, file(m.Dst.X), m.Dst.Y+1)
}

func file(x int8) byte {
	return 'a' + byte(x)
}
