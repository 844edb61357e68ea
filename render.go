package gpf

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// PrintGraph writes an ASCII box-and-arrow rendering of g to w, with
// source edges drawn pointing from upstream node to downstream node.
// Output nodes (spec.md §3's unreferenced sinks) are marked with a
// trailing "*".
func PrintGraph(w io.Writer, g *Graph) error {
	if len(g.Nodes) == 0 {
		fmt.Fprintln(w, "No nodes in graph")
		return nil
	}

	levels, err := topoLevels(g)
	if err != nil {
		return err
	}

	renderer := newGraphRenderer(g, levels)
	fmt.Fprint(w, renderer.render())
	return nil
}

// graphRenderer lays out and draws a Graph's box-and-arrow diagram.
type graphRenderer struct {
	graph  *Graph
	nodes  map[string]Node
	output map[string]bool
	levels [][]string

	nodePositions map[string]position
	levelRows     map[int][]int
	grid          [][]rune
	maxRow        int
	maxCol        int
}

type position struct {
	row int
	col int
}

// connectorInfo tracks connection information at a grid position for junction fixing.
type connectorInfo struct {
	row     int
	col     int
	hasUp   bool
	hasDown bool
}

func newGraphRenderer(g *Graph, levels [][]string) *graphRenderer {
	nodes := make(map[string]Node, len(g.Nodes))
	referenced := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
		for _, s := range n.Sources {
			referenced[s.SourceNodeID] = true
		}
	}
	output := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		output[n.ID] = !referenced[n.ID]
	}

	return &graphRenderer{
		graph:         g,
		nodes:         nodes,
		output:        output,
		levels:        levels,
		nodePositions: make(map[string]position),
		levelRows:     make(map[int][]int),
	}
}

func (gr *graphRenderer) render() string {
	gr.computeLayout()
	gr.drawNodes()
	gr.drawEdges()
	return gr.gridToString()
}

// computeLayout determines where each node should be placed in the grid.
func (gr *graphRenderer) computeLayout() {
	nodeWidths := make(map[string]int)
	for id := range gr.nodes {
		width := len(id)
		if gr.output[id] {
			width++ // space for * marker
		}
		width += 4 // box borders: "│ " + " │"
		if width < 7 {
			width = 7
		}
		nodeWidths[id] = width
	}

	type rowInfo struct {
		nodes    []string
		levelIdx int
	}
	var rows []rowInfo
	const minSpacing = 2

	for levelIdx, level := range gr.levels {
		sortedLevel := make([]string, len(level))
		copy(sortedLevel, level)
		sort.Strings(sortedLevel)
		rows = append(rows, rowInfo{nodes: sortedLevel, levelIdx: levelIdx})
	}

	levelWidths := make(map[int]int)
	for _, ri := range rows {
		total := 0
		for i, id := range ri.nodes {
			total += nodeWidths[id]
			if i < len(ri.nodes)-1 {
				total += minSpacing
			}
		}
		if total > levelWidths[ri.levelIdx] {
			levelWidths[ri.levelIdx] = total
		}
	}

	maxLevelWidth := 0
	for _, width := range levelWidths {
		if width > maxLevelWidth {
			maxLevelWidth = width
		}
	}

	gr.maxRow = 0
	gr.maxCol = 0
	rowOffset := 0

	for _, ri := range rows {
		gr.levelRows[ri.levelIdx] = append(gr.levelRows[ri.levelIdx], rowOffset)

		rowWidth := 0
		for i, id := range ri.nodes {
			rowWidth += nodeWidths[id]
			if i < len(ri.nodes)-1 {
				rowWidth += minSpacing
			}
		}

		startCol := (maxLevelWidth - rowWidth) / 2
		if startCol < 0 {
			startCol = 0
		}

		col := startCol
		for _, id := range ri.nodes {
			gr.nodePositions[id] = position{row: rowOffset, col: col}
			col += nodeWidths[id] + minSpacing
		}

		if col > gr.maxCol {
			gr.maxCol = col
		}
		gr.maxRow = rowOffset + 3

		rowOffset += 6
	}

	gr.grid = make([][]rune, gr.maxRow+1)
	for i := range gr.grid {
		gr.grid[i] = make([]rune, gr.maxCol+1)
		for j := range gr.grid[i] {
			gr.grid[i][j] = ' '
		}
	}
}

// drawNodes draws the node boxes in the grid.
func (gr *graphRenderer) drawNodes() {
	for id, pos := range gr.nodePositions {
		width := len(id)
		if gr.output[id] {
			width++
		}
		width += 4

		gr.setChar(pos.row, pos.col, '┌')
		for i := 1; i < width-1; i++ {
			gr.setChar(pos.row, pos.col+i, '─')
		}
		gr.setChar(pos.row, pos.col+width-1, '┐')

		text := id
		if gr.output[id] {
			text += "*"
		}
		gr.setChar(pos.row+1, pos.col, '│')
		gr.setString(pos.row+1, pos.col+2, text)
		gr.setChar(pos.row+1, pos.col+width-1, '│')

		gr.setChar(pos.row+2, pos.col, '└')
		for i := 1; i < width-1; i++ {
			gr.setChar(pos.row+2, pos.col+i, '─')
		}
		gr.setChar(pos.row+2, pos.col+width-1, '┘')
	}
}

// drawEdges draws edges from each upstream node to its downstream
// nodes, two-pass: first plain lines, then junction glyphs fixed up
// from neighboring characters.
func (gr *graphRenderer) drawEdges() {
	downstreamOf := gr.buildUpstreamMap()
	downstreamByLevel := gr.groupDownstreamByLevel(downstreamOf)
	connectors := gr.drawAllEdgeLines(downstreamOf, downstreamByLevel)
	gr.fixJunctions(connectors)
}

// buildUpstreamMap maps a downstream node id to the ids of the upstream
// nodes feeding its declared sources.
func (gr *graphRenderer) buildUpstreamMap() map[string][]string {
	upstream := make(map[string][]string)
	for id, n := range gr.nodes {
		for _, s := range n.Sources {
			upstream[id] = append(upstream[id], s.SourceNodeID)
		}
	}
	return upstream
}

// groupDownstreamByLevel groups downstream node ids by the level they
// occupy, to handle rows that wrap across multiple levels.
func (gr *graphRenderer) groupDownstreamByLevel(upstream map[string][]string) map[int][]string {
	byLevel := make(map[int][]string)
	for downstreamID := range upstream {
		for levelIdx, level := range gr.levels {
			for _, id := range level {
				if id == downstreamID {
					byLevel[levelIdx] = append(byLevel[levelIdx], downstreamID)
					break
				}
			}
		}
	}
	return byLevel
}

func (gr *graphRenderer) drawAllEdgeLines(upstream map[string][]string, downstreamByLevel map[int][]string) map[string]*connectorInfo {
	connectors := make(map[string]*connectorInfo)

	getConnector := func(row, col int) *connectorInfo {
		key := fmt.Sprintf("%d,%d", row, col)
		if c, ok := connectors[key]; ok {
			return c
		}
		c := &connectorInfo{row: row, col: col}
		connectors[key] = c
		return c
	}

	for levelIdx, downstreamIDs := range downstreamByLevel {
		downstreamRows := gr.levelRows[levelIdx]
		if len(downstreamRows) == 0 {
			continue
		}

		allUpstreamIDs := make(map[string]bool)
		for _, id := range downstreamIDs {
			for _, upstreamID := range upstream[id] {
				allUpstreamIDs[upstreamID] = true
			}
		}

		for upstreamID := range allUpstreamIDs {
			gr.drawUpstreamToDownstreamEdges(upstreamID, downstreamIDs, upstream, downstreamRows, getConnector)
		}
	}

	return connectors
}

func (gr *graphRenderer) drawUpstreamToDownstreamEdges(
	upstreamID string,
	downstreamIDs []string,
	upstream map[string][]string,
	downstreamRows []int,
	getConnector func(int, int) *connectorInfo,
) {
	var targets []string
	for _, id := range downstreamIDs {
		for _, src := range upstream[id] {
			if src == upstreamID {
				targets = append(targets, id)
				break
			}
		}
	}
	if len(targets) == 0 {
		return
	}

	upstreamPos := gr.nodePositions[upstreamID]
	upstreamCol := upstreamPos.col + gr.getNodeCenterOffset(upstreamID)
	upstreamBottomRow := upstreamPos.row + 2

	firstRow := downstreamRows[0]
	arrowRow := firstRow - 1
	connectRow := arrowRow - 2
	if connectRow <= upstreamBottomRow {
		connectRow = upstreamBottomRow + 1
	}

	for row := upstreamBottomRow + 1; row <= connectRow; row++ {
		gr.setChar(row, upstreamCol, '│')
	}
	getConnector(connectRow, upstreamCol).hasUp = true

	targetCols := make([]int, len(targets))
	for i, id := range targets {
		pos := gr.nodePositions[id]
		targetCols[i] = pos.col + gr.getNodeCenterOffset(id)
	}

	minCol, maxCol := upstreamCol, upstreamCol
	for _, col := range targetCols {
		if col < minCol {
			minCol = col
		}
		if col > maxCol {
			maxCol = col
		}
	}

	for col := minCol; col <= maxCol; col++ {
		gr.setChar(connectRow, col, '─')
	}

	for _, col := range targetCols {
		getConnector(connectRow, col).hasDown = true
		for row := connectRow; row <= arrowRow; row++ {
			gr.setChar(row, col, '│')
		}
		gr.setChar(arrowRow, col, '▼')
	}

	for i, id := range targets {
		pos := gr.nodePositions[id]
		col := targetCols[i]
		for row := arrowRow + 1; row < pos.row; row++ {
			gr.setChar(row, col, '│')
		}
	}
}

// fixJunctions scans the grid and fixes all junctions based on neighboring characters.
func (gr *graphRenderer) fixJunctions(connectors map[string]*connectorInfo) {
	nodeBoxRows := make(map[int]bool)
	for _, pos := range gr.nodePositions {
		nodeBoxRows[pos.row] = true
		nodeBoxRows[pos.row+1] = true
		nodeBoxRows[pos.row+2] = true
	}

	for row := 0; row < len(gr.grid); row++ {
		if nodeBoxRows[row] {
			continue
		}
		for col := 0; col < len(gr.grid[row]); col++ {
			current := gr.getChar(row, col)
			if current != '│' && current != '─' {
				continue
			}

			up := gr.getChar(row-1, col)
			down := gr.getChar(row+1, col)
			left := gr.getChar(row, col-1)
			right := gr.getChar(row, col+1)

			hasUp := isVerticalConnector(up)
			hasDown := isVerticalConnector(down)
			hasLeft := isHorizontalConnector(left)
			hasRight := isHorizontalConnector(right)

			if c, ok := connectors[fmt.Sprintf("%d,%d", row, col)]; ok {
				hasUp = hasUp || c.hasUp
				hasDown = hasDown || c.hasDown
			}

			if glyph := gr.selectJunctionGlyph(hasUp, hasDown, hasLeft, hasRight); glyph != current {
				gr.setChar(row, col, glyph)
			}
		}
	}
}

func isVerticalConnector(r rune) bool {
	switch r {
	case '│', '┼', '├', '┤', '┬', '┴', '▼':
		return true
	}
	return false
}

func isHorizontalConnector(r rune) bool {
	switch r {
	case '─', '┼', '├', '┤', '┬', '┴', '┌', '┐', '└', '┘':
		return true
	}
	return false
}

func (gr *graphRenderer) selectJunctionGlyph(up, down, left, right bool) rune {
	switch {
	case up && down && left && right:
		return '┼'
	case up && down && left && !right:
		return '┤'
	case up && down && !left && right:
		return '├'
	case up && down && !left && !right:
		return '│'
	case up && !down && left && right:
		return '┴'
	case up && !down && left && !right:
		return '┘'
	case up && !down && !left && right:
		return '└'
	case up && !down && !left && !right:
		return '│'
	case !up && down && left && right:
		return '┬'
	case !up && down && left && !right:
		return '┐'
	case !up && down && !left && right:
		return '┌'
	case !up && down && !left && !right:
		return '│'
	case !up && !down && left && right:
		return '─'
	case !up && !down && left && !right:
		return '─'
	case !up && !down && !left && right:
		return '─'
	default:
		return ' '
	}
}

func (gr *graphRenderer) getNodeCenterOffset(id string) int {
	width := len(id)
	if gr.output[id] {
		width++
	}
	width += 4
	return width / 2
}

func (gr *graphRenderer) setChar(row, col int, char rune) {
	if row >= 0 && row < len(gr.grid) && col >= 0 && col < len(gr.grid[row]) {
		gr.grid[row][col] = char
	}
}

func (gr *graphRenderer) getChar(row, col int) rune {
	if row >= 0 && row < len(gr.grid) && col >= 0 && col < len(gr.grid[row]) {
		return gr.grid[row][col]
	}
	return ' '
}

func (gr *graphRenderer) setString(row, col int, s string) {
	for i, r := range s {
		gr.setChar(row, col+i, r)
	}
}

func (gr *graphRenderer) gridToString() string {
	var sb strings.Builder
	for _, row := range gr.grid {
		line := strings.TrimRight(string(row), " ")
		if line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
