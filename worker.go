package astar

import "context"

// ExpandTask represents a request from the orchestrator to the workers.
type ExpandTask[NodeType comparable] struct {
	FromNode      NodeType
	Neighbor      Neighbor[NodeType]
	CurrentGScore float64
	GoalNode      NodeType
	HeuristicFunc Heuristic[NodeType]
}

// RelaxProposal is the worker's suggestion for updating a path
type RelaxProposal[NodeType comparable] struct {
	FromNode NodeType
	ToNode   NodeType
	GScore   float64
	FCost    float64
}

// propose scores one neighbor. Workers and the inline path share it.
func propose[NodeType comparable](task ExpandTask[NodeType]) RelaxProposal[NodeType] {
	tentativeG := task.CurrentGScore + task.Neighbor.Cost
	return RelaxProposal[NodeType]{
		FromNode: task.FromNode,
		ToNode:   task.Neighbor.ID,
		GScore:   tentativeG,
		FCost:    tentativeG + task.HeuristicFunc(task.Neighbor.ID, task.GoalNode),
	}
}

// startWorkers launches the expansion pool. Workers exit when ctx is done.
func startWorkers[NodeType comparable](
	contextObject context.Context,
	numberOfWorkers int,
	tasks <-chan ExpandTask[NodeType],
	proposals chan<- RelaxProposal[NodeType],
) {
	for i := 0; i < numberOfWorkers; i++ {
		go func() {
			for {
				select {
				case <-contextObject.Done():
					return
				case task := <-tasks:
					select {
					case proposals <- propose(task):
					case <-contextObject.Done():
						return
					}
				}
			}
		}()
	}
}

// dispatch feeds tasks to the pool without blocking the collector.
func dispatch[NodeType comparable](
	contextObject context.Context,
	tasks chan<- ExpandTask[NodeType],
	batch []ExpandTask[NodeType],
) {
	go func() {
		for _, task := range batch {
			select {
			case tasks <- task:
			case <-contextObject.Done():
				return
			}
		}
	}()
}
