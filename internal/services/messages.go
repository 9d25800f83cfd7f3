package services

// User-facing texts of the forms, prompts and empty states
const (
	MsgStudentRequired = "Reg No, Name and Email are required."
	MsgCourseRequired  = "Course code and title are required."

	MsgSelectCourse  = "Please select a course."
	MsgSelectStudent = "Please select a student."
	MsgEnrollFailed  = "Failed to enroll."

	MsgNoCoursesAvailable  = "No available courses to enroll."
	MsgNoStudentsAvailable = "No available students to enroll."

	MsgStudentNotFound = "Student not found."
	MsgCourseNotFound  = "Course not found."

	MsgNoEnrollments = "No enrollments yet."
	MsgNoStudents    = "No students found. Add one!"
	MsgNoCourses     = "No courses found. Add one!"

	PromptRemoveCourse  = "Remove this course from the student?"
	PromptRemoveStudent = "Remove this student from the course?"
	PromptDeleteStudent = "Delete this student? Their enrollments will also be removed."
	PromptDeleteCourse  = "Delete this course? Enrollments will also be removed."

	UnknownCourse  = "Unknown course"
	UnknownStudent = "Unknown student"
	Placeholder    = "-"
)
