// Package eibi2kiwi converts EiBi shortwave broadcast schedules into the
// label formats used by the KiwiSDR receiver: a semicolon-separated CSV and
// a compact JSON array. The Pipeline type ties the stages together; the
// eibi, converter and formatter packages can be used on their own.
package eibi2kiwi
