// Package planner computes dated destinations and applies the collision policy.
//
// Folders use unpadded year and month ({root}/2019/6) while file names pad
// every field after the year (2019_06_15_08_30_05.jpg). Plans are computed
// against the live filesystem and never cached: an existing file of equal
// size is a duplicate, a different size pushes the file to the first free
// _{n} suffix, and empty sources are always leftovers.
package planner
