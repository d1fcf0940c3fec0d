package service

// osa — расстояние Дамерау-Левенштейна в варианте OSA (транспозиция соседних
// символов). Три строки матрицы вместо полной, буферы живут между вызовами.
// Не для конкурентного использования: у каждого вызова скоринга свой osa.
type osa struct {
	prev2, prev, cur []int
}

func (d *osa) distance(a, b []rune) int {
	al, bl := len(a), len(b)
	if al == 0 {
		return bl
	}
	if bl == 0 {
		return al
	}
	if cap(d.cur) < bl+1 {
		d.prev2 = make([]int, bl+1)
		d.prev = make([]int, bl+1)
		d.cur = make([]int, bl+1)
	}
	prev2, prev, cur := d.prev2[:bl+1], d.prev[:bl+1], d.cur[:bl+1]
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= al; i++ {
		cur[0] = i
		for j := 1; j <= bl; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			// вставка / удаление / замена
			v := min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			// транспозиция соседних символов
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				v = min(v, prev2[j-2]+1)
			}
			cur[j] = v
		}
		prev2, prev, cur = prev, cur, prev2
	}
	d.prev2, d.prev, d.cur = prev2, prev, cur
	return prev[bl]
}
