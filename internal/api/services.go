package api

// Service accessors group Client methods by resource. Each service embeds
// *Client; the resource helpers themselves take a Requester so they stay
// independently testable.

type CoursesService struct{ *Client }

type StudentsService struct{ *Client }

type AssignmentsService struct{ *Client }

type SubmissionsService struct{ *Client }

type FilesService struct{ *Client }

type FoldersService struct{ *Client }

type ModulesService struct{ *Client }

func (c *Client) Courses() CoursesService {
	return CoursesService{c}
}

func (c *Client) Students() StudentsService {
	return StudentsService{c}
}

func (c *Client) Assignments() AssignmentsService {
	return AssignmentsService{c}
}

func (c *Client) Submissions() SubmissionsService {
	return SubmissionsService{c}
}

func (c *Client) Files() FilesService {
	return FilesService{c}
}

func (c *Client) Folders() FoldersService {
	return FoldersService{c}
}

func (c *Client) Modules() ModulesService {
	return ModulesService{c}
}
