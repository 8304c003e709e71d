package model

import "github.com/jsphweid/eartrainer/part"

type Answer = string

// AnswerList is the menu of answers offered to the learner, laid out in rows
type AnswerList [][]Answer

func (a AnswerList) Flat() []Answer {
	var res []Answer
	for _, row := range a {
		res = append(res, row...)
	}
	return res
}

func (a AnswerList) Contains(answer Answer) bool {
	for _, row := range a {
		for _, v := range row {
			if v == answer {
				return true
			}
		}
	}
	return false
}

type Segment struct {
	PartToPlay  part.Material
	RightAnswer Answer
}

// Question segments are presented and answered in order
type Question struct {
	Segments []Segment

	// NOTE: nil when the exercise has no tonal context to establish
	Cadence part.Material
}

func (q Question) HasCadence() bool {
	return len(q.Cadence) > 0
}

type CurrentAnswer struct {
	Answer   *Answer
	WasWrong bool
}
