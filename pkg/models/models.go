// Package models builds the classic benchmark problems on top of package
// fd. Each builder returns a fresh store together with the variables a
// search should label, so models can be handed to search.SolveAll.
package models

import (
	"fmt"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// Model is a built problem ready for labeling.
type Model struct {
	Store *fd.Store
	// Decision holds the variables to label, in their natural order.
	Decision []*fd.IntVar
}

// Queens places n queens on an n x n board, one per row. Decision[i] is
// the column of the queen in row i. The diagonals are expressed as two
// shifted copies of the columns, each kept pairwise distinct.
func Queens(n int, opts ...fd.StoreOption) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("queens: board size %d must be positive", n)
	}
	s := fd.NewStore(opts...)
	cols := make([]*fd.IntVar, n)
	up := make([]*fd.IntVar, n)
	down := make([]*fd.IntVar, n)
	for i := range cols {
		cols[i] = s.NewIntVar(fmt.Sprintf("q%d", i), 0, n-1)
		up[i] = s.NewIntVar(fmt.Sprintf("up%d", i), i, n-1+i)
		down[i] = s.NewIntVar(fmt.Sprintf("down%d", i), -i, n-1-i)
		if err := s.ImposeAll(fd.NewXplusCeqZ(cols[i], i, up[i]), fd.NewXplusCeqZ(cols[i], -i, down[i])); err != nil {
			return nil, err
		}
	}
	for _, vars := range [][]*fd.IntVar{cols, up, down} {
		c, err := fd.NewAlldiff(vars)
		if err != nil {
			return nil, err
		}
		if err := s.Impose(c); err != nil {
			return nil, err
		}
	}
	return &Model{Store: s, Decision: cols}, nil
}

// SendMoreMoney is the cryptarithm SEND + MORE = MONEY. Decision lists the
// letters S, E, N, D, M, O, R, Y.
func SendMoreMoney(opts ...fd.StoreOption) (*Model, error) {
	s := fd.NewStore(opts...)
	letters := make([]*fd.IntVar, 8)
	for i, name := range []string{"S", "E", "N", "D", "M", "O", "R", "Y"} {
		letters[i] = s.NewIntVar(name, 0, 9)
	}
	S, M := letters[0], letters[4]
	zero := s.NewIntVar("zero", 0, 0)

	diff, err := fd.NewAlldiff(letters)
	if err != nil {
		return nil, err
	}
	// 1000S + 91E - 90N + D - 9000M - 900O + 10R - Y = 0
	words, err := fd.NewSumWeight(letters, []int{1000, 91, -90, 1, -9000, -900, 10, -1}, zero)
	if err != nil {
		return nil, err
	}
	if err := s.ImposeAll(diff, words, fd.NewXneqC(S, 0), fd.NewXneqC(M, 0)); err != nil {
		return nil, err
	}
	return &Model{Store: s, Decision: letters}, nil
}

// MagicSquare fills an n x n grid with 1..n² so that every row, column and
// main diagonal adds up to n(n²+1)/2. Decision is the grid in row-major
// order.
func MagicSquare(n int, opts ...fd.StoreOption) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("magic square: size %d must be positive", n)
	}
	s := fd.NewStore(opts...)
	cells := make([]*fd.IntVar, n*n)
	for i := range cells {
		cells[i] = s.NewIntVar(fmt.Sprintf("c%d_%d", i/n, i%n), 1, n*n)
	}
	magic := n * (n*n + 1) / 2
	total := s.NewIntVar("magic", magic, magic)

	diff, err := fd.NewAlldiff(cells)
	if err != nil {
		return nil, err
	}
	if err := s.Impose(diff); err != nil {
		return nil, err
	}

	lines := make([][]*fd.IntVar, 0, 2*n+2)
	diag, anti := make([]*fd.IntVar, n), make([]*fd.IntVar, n)
	for i := 0; i < n; i++ {
		row, col := make([]*fd.IntVar, n), make([]*fd.IntVar, n)
		for j := 0; j < n; j++ {
			row[j] = cells[i*n+j]
			col[j] = cells[j*n+i]
		}
		lines = append(lines, row, col)
		diag[i] = cells[i*n+i]
		anti[i] = cells[i*n+n-1-i]
	}
	lines = append(lines, diag, anti)
	for _, line := range lines {
		c, err := fd.NewSum(line, total)
		if err != nil {
			return nil, err
		}
		if err := s.Impose(c); err != nil {
			return nil, err
		}
	}
	return &Model{Store: s, Decision: cells}, nil
}
