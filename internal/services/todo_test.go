package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/models"
	"github.com/taskvault-dev/taskvault/internal/testutil"
)

func TestTodoService_Create_WithoutProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Ana", "ana@x.com")

	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	todo, err := svc.Create(ctx, owner.ID, CreateTodoInput{
		Title:   "Buy milk",
		Note:    "2 liters",
		DueDate: &due,
	})
	require.NoError(t, err)

	assert.NotZero(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, "2 liters", todo.Note)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.ProjectID)
	assert.Nil(t, todo.Project)
	assert.Empty(t, todo.Subtasks)
	require.NotNil(t, todo.DueDate)
	assert.True(t, todo.DueDate.Equal(due))
}

func TestTodoService_Create_WithOwnProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	project, err := NewProjectService(db).Create(ctx, owner.ID, "Home", "")
	require.NoError(t, err)

	todo, err := svc.Create(ctx, owner.ID, CreateTodoInput{
		Title:     "Buy milk",
		ProjectID: &project.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, todo.Project)
	assert.Equal(t, project.ID, todo.Project.ID)
	assert.Equal(t, "Home", todo.Project.Name)
	assert.Empty(t, todo.Subtasks)
}

func TestTodoService_Create_ForeignProjectRejectedBeforeWrite(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com")

	anasProject, err := NewProjectService(db).Create(ctx, ana.ID, "Home", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, bob.ID, CreateTodoInput{
		Title:     "Sneak in",
		ProjectID: &anasProject.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Project not found", err.Error())

	// Nothing was persisted.
	var count int64
	require.NoError(t, db.Model(&models.Todo{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTodoService_List_OrderAndNesting(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	project, err := NewProjectService(db).Create(ctx, owner.ID, "Home", "")
	require.NoError(t, err)

	older := seedTodo(t, db, owner.ID, &project.ID, "older", 0)
	newer := seedTodo(t, db, owner.ID, nil, "newer", 10)
	seedSubtask(t, db, owner.ID, older.ID, "second sub", 5)
	seedSubtask(t, db, owner.ID, older.ID, "first sub", 1)

	todos, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	assert.Equal(t, newer.ID, todos[0].ID)
	assert.Equal(t, older.ID, todos[1].ID)

	require.NotNil(t, todos[1].Project)
	assert.Equal(t, "Home", todos[1].Project.Name)

	require.Len(t, todos[1].Subtasks, 2)
	assert.Equal(t, "first sub", todos[1].Subtasks[0].Title)
	assert.Equal(t, "second sub", todos[1].Subtasks[1].Title)
}

func TestTodoService_GetByID_OwnershipIsolation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com")

	todo := seedTodo(t, db, ana.ID, nil, "private", 0)

	_, err := svc.GetByID(ctx, bob.ID, todo.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.ToggleComplete(ctx, bob.ID, todo.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(ctx, bob.ID, todo.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	title := "hijack"
	_, err = svc.Update(ctx, bob.ID, todo.ID, UpdateTodoInput{Title: &title})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTodoService_Update_FieldsAndProjectLink(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com")

	projects := NewProjectService(db)
	anasProject, err := projects.Create(ctx, ana.ID, "Home", "")
	require.NoError(t, err)
	bobsProject, err := projects.Create(ctx, bob.ID, "Work", "")
	require.NoError(t, err)

	todo, err := svc.Create(ctx, ana.ID, CreateTodoInput{Title: "Buy milk"})
	require.NoError(t, err)

	// Partial update: only the note changes.
	note := "oat"
	updated, err := svc.Update(ctx, ana.ID, todo.ID, UpdateTodoInput{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, "oat", updated.Note)

	// Attaching to own project works.
	updated, err = svc.Update(ctx, ana.ID, todo.ID, UpdateTodoInput{SetProject: true, ProjectID: &anasProject.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.Project)
	assert.Equal(t, "Home", updated.Project.Name)

	// Relinking to a foreign project fails and changes nothing.
	_, err = svc.Update(ctx, ana.ID, todo.ID, UpdateTodoInput{SetProject: true, ProjectID: &bobsProject.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	current, err := svc.GetByID(ctx, ana.ID, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, current.ProjectID)
	assert.Equal(t, anasProject.ID, *current.ProjectID)

	// Explicit detach clears the link.
	updated, err = svc.Update(ctx, ana.ID, todo.ID, UpdateTodoInput{SetProject: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ProjectID)
	assert.Nil(t, updated.Project)
}

func TestTodoService_ToggleComplete_IsAnInvolution(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	todo, err := svc.Create(ctx, owner.ID, CreateTodoInput{Title: "Buy milk"})
	require.NoError(t, err)
	require.False(t, todo.Completed)

	once, err := svc.ToggleComplete(ctx, owner.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := svc.ToggleComplete(ctx, owner.ID, todo.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed)
}

func TestTodoService_Delete_CascadesToSubtasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewTodoService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Ana", "ana@x.com")
	todo, err := svc.Create(ctx, owner.ID, CreateTodoInput{Title: "Buy milk"})
	require.NoError(t, err)

	seedSubtask(t, db, owner.ID, todo.ID, "a", 0)
	seedSubtask(t, db, owner.ID, todo.ID, "b", 1)

	require.NoError(t, svc.Delete(ctx, owner.ID, todo.ID))

	var count int64
	require.NoError(t, db.Model(&models.Subtask{}).Where("todo_id = ?", todo.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.GetByID(ctx, owner.ID, todo.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
