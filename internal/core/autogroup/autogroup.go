// Package autogroup implements the master/slave grouping algebra for the
// four auto layouts (AutoLeft, AutoRight, AutoTop, AutoBottom). A container
// under one of these layouts partitions its children into one master group
// followed or preceded by nb_slave_groups slave groups, each as close to
// equal size as an integer division allows.
package autogroup

import "github.com/bnema/layoutcore/internal/domain/entity"

// masterFirst reports whether the master group sits before the slave
// groups along the major axis (AutoLeft, AutoTop) rather than after
// (AutoRight, AutoBottom).
func masterFirst(layout entity.Layout) bool {
	return layout == entity.LayoutAutoLeft || layout == entity.LayoutAutoTop
}

// masterCount returns min(nb_master, |children|).
func masterCount(n *entity.Node) int {
	return n.EffectiveMasterCount()
}

// slaveCount returns the number of children not in the master group.
func slaveCount(n *entity.Node) int {
	return len(n.Children) - masterCount(n)
}

// slaveGroupCount returns min(nb_slave_groups, slaveCount(n)).
func slaveGroupCount(n *entity.Node) int {
	return n.EffectiveSlaveGroupCount()
}

// Count returns the number of groups (master + slave groups) a container
// is currently partitioned into: group_count = G + (N>0 && nb_master>0 ? 1 : 0).
func Count(n *entity.Node) int {
	g := slaveGroupCount(n)
	if len(n.Children) > 0 && n.NbMaster > 0 {
		g++
	}
	return g
}

// StartIndex returns the first child index of the group containing child index.
func StartIndex(n *entity.Node, index int) int {
	if index < 0 || !entity.IsAutoLayout(n.Layout) || index < masterCount(n) {
		return 0
	}
	nbSlaves := slaveCount(n)
	nbGroups := slaveGroupCount(n)
	if nbGroups == 0 {
		return clampIdx(n, masterCount(n))
	}
	groupSize := nbSlaves / nbGroups
	remainder := nbSlaves % nbGroups
	idx2 := (nbGroups-remainder)*groupSize + masterCount(n)

	var start int
	if index < idx2 {
		start = ((index-masterCount(n))/groupSize)*groupSize + masterCount(n)
	} else {
		start = idx2 + ((index-idx2)/(groupSize+1))*(groupSize+1)
	}
	return clampIdx(n, start)
}

// EndIndex returns one past the last child index of the group containing
// index; equivalently, the start index of the next group.
func EndIndex(n *entity.Node, index int) int {
	if index < 0 || !entity.IsAutoLayout(n.Layout) {
		return len(n.Children)
	}
	var next int
	if index < masterCount(n) {
		next = masterCount(n)
	} else {
		nbSlaves := slaveCount(n)
		nbGroups := slaveGroupCount(n)
		if nbGroups == 0 {
			return clampIdx(n, masterCount(n))
		}
		groupSize := nbSlaves / nbGroups
		remainder := nbSlaves % nbGroups
		idx2 := (nbGroups-remainder)*groupSize + masterCount(n)
		if index < idx2 {
			next = ((index-masterCount(n))/groupSize+1)*groupSize + masterCount(n)
		} else {
			next = idx2 + ((index-idx2)/(groupSize+1)+1)*(groupSize+1)
		}
	}
	return clampIdx(n, next)
}

// Index returns the 0-based major-axis position of the group containing
// child index.
func Index(n *entity.Node, index int) int {
	if index < 0 {
		return 0
	}
	first := masterFirst(n.Layout)
	nbSlaves := slaveCount(n)
	if index < masterCount(n) {
		if first || nbSlaves <= 0 {
			return 0
		}
		return slaveGroupCount(n)
	}

	nbGroups := slaveGroupCount(n)
	if nbGroups == 0 {
		return 0
	}
	groupSize := nbSlaves / nbGroups
	remainder := nbSlaves % nbGroups
	idx2 := (nbGroups-remainder)*groupSize + masterCount(n)

	var gidx int
	if index < idx2 {
		gidx = (index - masterCount(n)) / groupSize
	} else {
		gidx = (nbGroups - remainder) + (index-idx2)/(groupSize+1)
	}
	if first && n.NbMaster > 0 {
		gidx++
	}
	return gidx
}

// Bounds returns the [start, end) child-index range of group, the inverse of
// Index. ok is false when group is out of range.
func Bounds(n *entity.Node, group int) (start, end int, ok bool) {
	nbGroups := Count(n)
	if group < 0 || group >= nbGroups {
		return 0, 0, false
	}

	first := masterFirst(n.Layout)
	nbMaster := masterCount(n)
	nbSlaveGroups := slaveGroupCount(n)

	if nbMaster > 0 && ((first && group == 0) || (!first && group == nbGroups-1)) {
		return 0, nbMaster, true
	}

	nbSlaves := slaveCount(n)
	if nbSlaveGroups == 0 {
		return 0, 0, false
	}
	groupSize := nbSlaves / nbSlaveGroups
	remainder := nbSlaves % nbSlaveGroups

	g0 := 0
	if first && nbMaster > 0 {
		g0 = 1
	}
	g1 := g0 + nbSlaveGroups - remainder

	if group < g1 {
		start = nbMaster + (group-g0)*groupSize
		end = start + groupSize
	} else {
		g2 := group - g1
		start = nbMaster + (nbSlaveGroups-remainder)*groupSize + g2*(groupSize+1)
		end = start + groupSize + 1
	}
	return start, end, true
}

func clampIdx(n *entity.Node, idx int) int {
	if idx > len(n.Children) {
		return len(n.Children)
	}
	return idx
}
