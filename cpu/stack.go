package cpu

// Stack is the return stack of the computer.
type Stack struct {
	Data []Location
}

func (s *Stack) Push(loc Location) (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}
	s.Data = append(s.Data, loc)
	return
}

func (s *Stack) Pop() (loc Location, ok bool) {
	loc, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) == STACK_LIMIT
}

func (s *Stack) Peek() (loc Location, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
