// Package detection finds table cells drawn as ruled borders on a page raster.
//
// The package implements a purely geometric pipeline. It never looks at text;
// it only follows horizontal and vertical runs of ink and asks which of them
// close up into rectangles.
//
// # Pipeline
//
// Pipeline.Run executes the stages in order, each producing a new collection:
//
//  1. Axis scan: ScanColumns and ScanRows collect the foreground coordinates
//     of every column and row, dropping lines with fewer than LineWeight hits.
//  2. Segment assembly: AssembleVertical and AssembleHorizontal turn each
//     group into at most one Segment, bridging gaps up to MergeGap pixels.
//  3. Duplicate filtering: FilterAdjacent collapses strokes that are one
//     pixel apart, so a 2px rule yields a single line.
//  4. Candidate generation: GenerateCandidates pairs every two verticals with
//     every two horizontals.
//  5. Validation: ValidateCandidates keeps a candidate only if all four of
//     its edges lie on detected segments, within Tolerance pixels.
//  6. Overlap resolution: Resolve orders the rectangles by width and discards
//     every one whose interior still contains ink.
//
// The survivors are the cells: rectangles that are bounded by ruled lines
// and enclose no further structure.
//
// # Coordinate System
//
// Coordinates follow the raster convention: origin at the top-left, X to
// the right, Y downward. Rect edges are the pixel positions of the ruled
// lines themselves, so both X1 and X2 lie on ink.
//
// # Cost
//
// Validation dominates: it visits C(|V|,2) × C(|H|,2) candidates. Segment
// lookups go through an R-tree, but pages with hundreds of ruled lines are
// still expensive. Crop to the table region first when possible.
//
// # Limitations
//
//   - Only axis-aligned rules are found; deskew the page beforehand.
//   - A column or row contributes one segment, its last run longer than
//     LineWeight. Two separate tables sharing a column of pixels therefore
//     compete for that column's segment.
//   - Strokes two or more pixels apart are treated as distinct lines, so
//     double rules produce thin cells between them.
package detection
