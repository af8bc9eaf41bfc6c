package sample

import "sync"

// RunPool doubles every job using a fixed number of workers.
func RunPool(jobs []int, workers int) []int {
	jobChan := make(chan int, 10)
	results := make(chan int, len(jobs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				results <- job * 2
			}
		}()
	}
	for _, j := range jobs {
		jobChan <- j
	}
	close(jobChan)
	wg.Wait()
	close(results)

	out := make([]int, 0, len(jobs))
	for r := range results {
		out = append(out, r)
	}
	return out
}
