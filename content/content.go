// Package content serves the static knowledge tables shown by the UI:
// flashcards, fun facts, the research timeline, and the sample knowledge
// graph. Constant lookups only.
package content

type FlashCard struct {
	ID         int    `json:"id"`
	Category   string `json:"category"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

type TimelineDataPoint struct {
	Year      int    `json:"year"`
	Count     int    `json:"count"`
	Highlight string `json:"highlight"`
}

type TimelineStats struct {
	TotalYears   int `json:"total_years"`
	TotalStudies int `json:"total_studies"`
	MaxCount     int `json:"max_count"`
	MinCount     int `json:"min_count"`
}

type GraphNode struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func FlashCards() []FlashCard {
	return []FlashCard{
		{
			ID:         1,
			Category:   "Bone Health",
			Question:   "How much bone density do astronauts lose per month in space?",
			Answer:     "Astronauts lose about 1-2% of bone mass per month in space due to the lack of gravity. This is similar to what older adults experience in a year on Earth!",
			Difficulty: "Medium",
		},
		{
			ID:         2,
			Category:   "Plant Biology",
			Question:   "Why do plants grow differently in space?",
			Answer:     "Without gravity, plants can't tell which way is 'up'. They rely on special lights to guide their growth direction. This is called phototropism!",
			Difficulty: "Easy",
		},
		{
			ID:         3,
			Category:   "Microbiology",
			Question:   "How do microbes behave differently in microgravity?",
			Answer:     "Microbes grow faster and can become more resistant to antibiotics in space. They also form biofilms more quickly, which helps them survive harsh conditions.",
			Difficulty: "Hard",
		},
		{
			ID:         4,
			Category:   "Sleep Science",
			Question:   "Why is it hard to sleep on the ISS?",
			Answer:     "The ISS orbits Earth every 90 minutes, so astronauts see 16 sunrises and sunsets per day! This disrupts their natural sleep-wake cycle (circadian rhythm).",
			Difficulty: "Easy",
		},
		{
			ID:         5,
			Category:   "DNA & Genetics",
			Question:   "How does space radiation affect DNA?",
			Answer:     "Space radiation can damage DNA by breaking the strands. Luckily, our cells have repair mechanisms, but they work about 25% slower in space.",
			Difficulty: "Hard",
		},
		{
			ID:         6,
			Category:   "Muscle Health",
			Question:   "Why do astronauts need to exercise 2 hours daily?",
			Answer:     "Without gravity, muscles don't work as hard. Daily exercise prevents muscle loss (atrophy) and helps maintain about 85% of muscle mass during missions.",
			Difficulty: "Medium",
		},
	}
}

func FunFacts() []string {
	return []string{
		"Astronauts can get up to 2 inches taller in space!",
		"Plants grow differently in microgravity, with roots growing in all directions.",
		"Space radiation is 10 times stronger than on Earth.",
		"Bones lose 1-2% of mass per month in space without countermeasures.",
		"Microbes behave differently in space and can become more resistant.",
		"Sleep patterns change in space due to 16 sunrises per day on the ISS!",
	}
}

func TimelineData() []TimelineDataPoint {
	return []TimelineDataPoint{
		{Year: 2015, Count: 5, Highlight: "Initial ISS Biology Studies"},
		{Year: 2016, Count: 8, Highlight: "Plant Growth Experiments"},
		{Year: 2017, Count: 12, Highlight: "Sleep & Circadian Research"},
		{Year: 2018, Count: 15, Highlight: "Bone Density Studies"},
		{Year: 2019, Count: 18, Highlight: "Microbial Behavior Analysis"},
		{Year: 2020, Count: 22, Highlight: "COVID-19 Space Research"},
		{Year: 2021, Count: 25, Highlight: "DNA Repair Mechanisms"},
		{Year: 2022, Count: 20, Highlight: "Muscle Atrophy Prevention"},
		{Year: 2023, Count: 16, Highlight: "Advanced Life Support"},
	}
}

func ComputeTimelineStats(data []TimelineDataPoint) TimelineStats {
	stats := TimelineStats{TotalYears: len(data)}
	for i, d := range data {
		stats.TotalStudies += d.Count
		if i == 0 || d.Count > stats.MaxCount {
			stats.MaxCount = d.Count
		}
		if i == 0 || d.Count < stats.MinCount {
			stats.MinCount = d.Count
		}
	}
	return stats
}

func GraphData() ([]GraphNode, []GraphEdge) {
	nodes := []GraphNode{
		{ID: "1", Type: "Study", Label: "Bone Density", X: 200, Y: 150},
		{ID: "2", Type: "Study", Label: "Plant Growth", X: 400, Y: 100},
		{ID: "3", Type: "Study", Label: "DNA Repair", X: 600, Y: 150},
		{ID: "4", Type: "Topic", Label: "Gravity", X: 300, Y: 250},
		{ID: "5", Type: "Topic", Label: "Radiation", X: 500, Y: 250},
		{ID: "6", Type: "Mission", Label: "ISS", X: 400, Y: 350},
	}
	edges := []GraphEdge{
		{From: "1", To: "4"},
		{From: "2", To: "4"},
		{From: "3", To: "5"},
		{From: "1", To: "6"},
		{From: "2", To: "6"},
		{From: "3", To: "6"},
	}
	return nodes, edges
}
