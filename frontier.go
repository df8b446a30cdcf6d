package astar

import (
	"container/heap"
	"context"

	"github.com/pdrpinto/dynastar/internal"
)

// frontier is the orchestrator-owned state shared by Search and Stepper.
// Only the orchestrator goroutine touches it; workers see tasks and return
// proposals.
type frontier[NodeType comparable] struct {
	graph     Graph[NodeType]
	startNode NodeType
	goalNode  NodeType
	heuristic Heuristic[NodeType]
	workers   int

	openSet           PriorityQueue[NodeType]
	openSetMap        map[NodeType]*PriorityQueueItem[NodeType]
	closedSet         map[NodeType]bool
	cameFrom          map[NodeType]NodeType
	pathCostFromStart map[NodeType]float64
	pushed            int

	expandTaskChannel    chan ExpandTask[NodeType]
	relaxProposalChannel chan RelaxProposal[NodeType]
}

func newFrontier[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	numberOfWorkers int,
) *frontier[NodeType] {
	f := &frontier[NodeType]{
		graph:             graph,
		startNode:         startNode,
		goalNode:          goalNode,
		heuristic:         heuristic,
		workers:           numberOfWorkers,
		openSet:           make(PriorityQueue[NodeType], 0),
		openSetMap:        make(map[NodeType]*PriorityQueueItem[NodeType]),
		closedSet:         make(map[NodeType]bool),
		cameFrom:          make(map[NodeType]NodeType),
		pathCostFromStart: map[NodeType]float64{startNode: 0.0},
	}
	heap.Init(&f.openSet)
	f.push(startNode, 0.0, heuristic(startNode, goalNode))

	// A single worker would only add channel hops; expand inline instead.
	if numberOfWorkers > 1 {
		f.expandTaskChannel = make(chan ExpandTask[NodeType])
		f.relaxProposalChannel = make(chan RelaxProposal[NodeType], numberOfWorkers)
		startWorkers(contextObject, numberOfWorkers, f.expandTaskChannel, f.relaxProposalChannel)
	}
	return f
}

func (f *frontier[NodeType]) push(node NodeType, gScore, fCost float64) {
	item := &PriorityQueueItem[NodeType]{Node: node, GScore: gScore, FCost: fCost, Sequence: f.pushed}
	f.pushed++
	heap.Push(&f.openSet, item)
	f.openSetMap[node] = item
}

// pop returns the best open node that is not closed yet, or false when the
// open set is exhausted.
func (f *frontier[NodeType]) pop() (*PriorityQueueItem[NodeType], bool) {
	for f.openSet.Len() > 0 {
		item := heap.Pop(&f.openSet).(*PriorityQueueItem[NodeType])
		delete(f.openSetMap, item.Node)
		if f.closedSet[item.Node] {
			continue
		}
		f.closedSet[item.Node] = true
		return item, true
	}
	return nil, false
}

// expand scores every neighbor of current and relaxes the open set.
func (f *frontier[NodeType]) expand(contextObject context.Context, current *PriorityQueueItem[NodeType]) error {
	neighbors := f.graph.Neighbors(current.Node)
	if len(neighbors) == 0 {
		return nil
	}
	tasks := make([]ExpandTask[NodeType], len(neighbors))
	for i, neighbor := range neighbors {
		tasks[i] = ExpandTask[NodeType]{
			FromNode:      current.Node,
			Neighbor:      neighbor,
			CurrentGScore: current.GScore,
			GoalNode:      f.goalNode,
			HeuristicFunc: f.heuristic,
		}
	}

	if f.expandTaskChannel == nil {
		for _, task := range tasks {
			f.relax(propose(task))
		}
		return nil
	}

	dispatch(contextObject, f.expandTaskChannel, tasks)
	for i := 0; i < len(tasks); i++ {
		select {
		case <-contextObject.Done():
			return contextObject.Err()
		case proposal := <-f.relaxProposalChannel:
			f.relax(proposal)
		}
	}
	return nil
}

func (f *frontier[NodeType]) relax(proposal RelaxProposal[NodeType]) {
	if f.closedSet[proposal.ToNode] {
		return
	}
	currentG, exists := f.pathCostFromStart[proposal.ToNode]
	if exists && proposal.GScore >= currentG {
		return
	}
	f.pathCostFromStart[proposal.ToNode] = proposal.GScore
	f.cameFrom[proposal.ToNode] = proposal.FromNode
	if item, inOpen := f.openSetMap[proposal.ToNode]; !inOpen {
		f.push(proposal.ToNode, proposal.GScore, proposal.FCost)
	} else {
		item.GScore = proposal.GScore
		item.FCost = proposal.FCost
		heap.Fix(&f.openSet, item.IndexInQueue)
	}
}

func (f *frontier[NodeType]) path(current NodeType) []NodeType {
	return internal.ReconstructPath(f.cameFrom, current, f.startNode)
}

// failed reports the search statistics of an unsuccessful run.
func (f *frontier[NodeType]) failed(expandedNodes int) Result[NodeType] {
	return Result[NodeType]{
		ExpandedNodes: expandedNodes,
		FrontierSize:  f.frontierSize(),
		VisitedSize:   f.visitedSize(),
	}
}

func (f *frontier[NodeType]) frontierSize() int { return len(f.openSetMap) }

func (f *frontier[NodeType]) visitedSize() int { return len(f.closedSet) }
