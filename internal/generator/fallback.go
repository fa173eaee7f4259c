package generator

import (
	"fmt"

	"github.com/dinolearn/backend/internal/models"
)

// fallbackDayTitles are the day title templates used when no skeleton could be generated.
// %[1]s is the topic.
var fallbackDayTitles = [models.RoadmapDays]string{
	"Introduction to %[1]s",
	"Fundamentals of %[1]s",
	"Core Principles of %[1]s",
	"History and Evolution of %[1]s",
	"Key Components of %[1]s",
	"Essential Tools and Techniques for %[1]s",
	"Practical Applications of %[1]s",
	"Common Challenges in %[1]s",
	"Intermediate %[1]s Concepts",
	"Real-World %[1]s Case Studies",
	"Advanced %[1]s Techniques",
	"%[1]s Best Practices",
	"Future Trends in %[1]s",
	"Mastering Advanced %[1]s Concepts",
}

// FallbackSkeleton returns the deterministic 14-day plan for a topic
func FallbackSkeleton(topic string) models.Skeleton {
	days := make([]models.SkeletonDay, 0, models.RoadmapDays)
	for i, tmpl := range fallbackDayTitles {
		days = append(days, models.SkeletonDay{Day: i + 1, Title: fmt.Sprintf(tmpl, topic)})
	}
	return models.Skeleton{Topic: topic, Days: days}
}

// FallbackLesson returns the deterministic lesson content for a day and title
func FallbackLesson(day int, title string) models.LessonContent {
	return models.LessonContent{
		Day:     day,
		Title:   title,
		Summary: fmt.Sprintf("This lesson introduces key concepts about %s.", title),
		Sections: []models.Section{
			{Heading: "Introduction", Body: fmt.Sprintf("Welcome to day %d of our course. Today we'll learn about %s.", day, title)},
			{Heading: "Key Concepts", Body: fmt.Sprintf("The main concepts to understand in %s include the fundamental principles and applications.", title)},
			{Heading: "Examples", Body: fmt.Sprintf("Examples help illustrate the concepts we're learning about in %s.", title)},
			{Heading: "Practice", Body: fmt.Sprintf("Try applying what you've learned about %s with these practice exercises.", title)},
			{Heading: "Summary", Body: fmt.Sprintf("Today we explored %s. Practice these concepts to reinforce your understanding.", title)},
		},
		Quiz: FallbackQuiz(title),
	}
}

// FallbackQuiz returns three deterministic questions about a lesson title
func FallbackQuiz(title string) []models.QuizQuestion {
	return []models.QuizQuestion{
		{
			Question: fmt.Sprintf("What is the main focus of the lesson %q?", title),
			Options: []string{
				fmt.Sprintf("Understanding the core ideas of %s", title),
				"Memorizing unrelated facts",
				"Skipping the fundamentals",
				"None of the above",
			},
			Answer: fmt.Sprintf("Understanding the core ideas of %s", title),
		},
		{
			Question: fmt.Sprintf("Which activity best reinforces what you learned in %q?", title),
			Options: []string{
				"Reading the title only",
				"Practicing with real examples",
				"Avoiding the exercises",
				"Forgetting the key concepts",
			},
			Answer: "Practicing with real examples",
		},
		{
			Question: fmt.Sprintf("What should you do after finishing %q?", title),
			Options: []string{
				"Delete your notes",
				"Ignore the practice section",
				"Review the summary and key concepts",
				"Skip to the final day",
			},
			Answer: "Review the summary and key concepts",
		},
	}
}

// FallbackPreQuiz returns the deterministic diagnostic questions for a topic
func FallbackPreQuiz(topic string) []string {
	return []string{
		fmt.Sprintf("What are the key concepts in %s?", topic),
		fmt.Sprintf("Explain the importance of %s in real-world applications.", topic),
		fmt.Sprintf("How does %s compare to other similar technologies or approaches?", topic),
	}
}
