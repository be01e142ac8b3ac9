package mathml

// frame is a row being built together with the operator it ends with
type frame struct {
	row     *Node
	op      OperatorPair
	operand bool
}

func newFrame() *frame {
	return &frame{row: newAddedRow(), op: OperatorPair{Text: FencepostChar, Info: fencepost}}
}

// newFrameWith starts a row with an operand waiting for the right side of op
func newFrameWith(operand *Node, op OperatorPair) *frame {
	return &frame{row: newAddedRow(operand), op: op}
}

func (f *frame) priority() int {
	return f.op.Info.Priority
}

func (f *frame) lastChild() *Node {
	if len(f.row.Children) == 0 {
		return nil
	}

	return f.row.Children[len(f.row.Children)-1]
}

// add appends node to the row, op is zero for operands
func (f *frame) add(node *Node, op OperatorPair) {
	if !op.IsOperator() {
		if f.operand {
			tracer().Errorf("two operands in a row: %s", summary(node))
		}

		f.operand = true
	} else {
		f.op = op
		f.operand = false
	}

	f.row.Children = append(f.row.Children, node)
}

func (f *frame) removeLastOperand() *Node {
	last := f.lastChild()
	if last == nil {
		return nil
	}

	f.row.Children = f.row.Children[:len(f.row.Children)-1]
	f.operand = false
	return last
}

// parseStack holds rows in order of increasing binding, bottom frame is a fencepost
type parseStack struct {
	frames []*frame
}

func newParseStack() *parseStack {
	return &parseStack{frames: []*frame{newFrame()}}
}

func (s *parseStack) top() *frame {
	return s.frames[len(s.frames)-1]
}

func (s *parseStack) push(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *parseStack) pop() *frame {
	f := s.top()
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

// reduce pops frames binding tighter than priority, adding each one to the frame below
func (s *parseStack) reduce(priority int) {
	for priority < s.top().priority() && len(s.frames) > 1 {
		s.reduceOnce()
	}
}

// reduceOnce pops top frame and adds its row as an operand to the new top
func (s *parseStack) reduceOnce() {
	if len(s.frames) < 2 {
		tracer().Errorf("reducing the bottom of the stack")
		return
	}

	f := s.pop()
	row := f.row
	if len(row.Children) == 1 {
		row = f.removeLastOperand()
	}

	if len(row.Children) == 0 && row.Kind == RowKind {
		return
	}

	s.top().add(row, OperatorPair{})
}
