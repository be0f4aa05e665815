// Package srs implements the SM-2 spaced repetition scheduling core.
//
// srs is pure computation: the scheduler, the learning-stage classifier,
// the due-queue selector and the streak counter all operate on values the
// caller has already loaded and take "today" as an explicit argument.
// Persistence and transport live in the surrounding service packages.
//
// Basic usage:
//
//	state := srs.NewState(today)
//	next, err := srs.Update(state, srs.Grade(5), today)
//	if err != nil {
//	    // grade outside [0,5]
//	}
//	stage := srs.Classify(next.Repetitions, next.EaseFactor)
package srs
