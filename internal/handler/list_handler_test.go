package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/models"
)

func TestCreateAndListLists(t *testing.T) {
	router := setupRouter(t)
	user, token := createUser(t, "alice")

	w := doRequest(t, router, http.MethodPost, "/api/v1/lists", token, ListInput{
		Name:        "gophers",
		Description: "people who write Go",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created ListResponse
	decodeJSON(t, w, &created)
	assert.Equal(t, "gophers", created.Name)
	assert.Equal(t, user.ID, created.CreatorID)
	assert.False(t, created.Private)

	w = doRequest(t, router, http.MethodGet, "/api/v1/lists/mine", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine []ListResponse
	decodeJSON(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestListMembership(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	bob, bobToken := createUser(t, "bob")

	w := doRequest(t, router, http.MethodPost, "/api/v1/lists", aliceToken, ListInput{Name: "friends"})
	require.Equal(t, http.StatusCreated, w.Code)
	var list ListResponse
	decodeJSON(t, w, &list)

	membersPath := fmt.Sprintf("/api/v1/lists/%d/members", list.ID)

	// Only the creator may manage members.
	w = doRequest(t, router, http.MethodPost, membersPath, bobToken, ListMemberInput{UserID: bob.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, membersPath, aliceToken, ListMemberInput{UserID: bob.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var membership MembershipResponse
	decodeJSON(t, w, &membership)
	assert.True(t, membership.Member)
	assert.True(t, membership.Changed)

	// Adding the same member again changes nothing.
	w = doRequest(t, router, http.MethodPost, membersPath, aliceToken, ListMemberInput{UserID: bob.ID})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &membership)
	assert.True(t, membership.Member)
	assert.False(t, membership.Changed)

	var rows int64
	database.DB.Model(&models.ListMember{}).Count(&rows)
	assert.Equal(t, int64(1), rows)

	// Unknown users cannot be added.
	w = doRequest(t, router, http.MethodPost, membersPath, aliceToken, ListMemberInput{UserID: 99999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, membersPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []PublicUserResponse
	decodeJSON(t, w, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "bob", members[0].Username)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", membersPath, bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &membership)
	assert.False(t, membership.Member)
	assert.True(t, membership.Changed)

	// Removing again is an idempotent no-op.
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", membersPath, bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &membership)
	assert.False(t, membership.Changed)
}

func TestListFeed(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	bob, bobToken := createUser(t, "bob")
	_, carolToken := createUser(t, "carol")

	w := doRequest(t, router, http.MethodPost, "/api/v1/lists", aliceToken, ListInput{Name: "reading"})
	require.Equal(t, http.StatusCreated, w.Code)
	var list ListResponse
	decodeJSON(t, w, &list)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/lists/%d/members", list.ID), aliceToken, ListMemberInput{UserID: bob.ID})

	createTweet(t, router, bobToken, "member tweet")
	createTweet(t, router, carolToken, "outsider tweet")

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/lists/%d/feed", list.ID), carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feed PaginatedResponse[TweetResponse]
	decodeJSON(t, w, &feed)
	require.Equal(t, int64(1), feed.Meta.TotalItems)
	assert.Equal(t, "member tweet", feed.Data[0].Content)
}

func TestPrivateListVisibility(t *testing.T) {
	router := setupRouter(t)
	_, aliceToken := createUser(t, "alice")
	_, bobToken := createUser(t, "bob")

	w := doRequest(t, router, http.MethodPost, "/api/v1/lists", aliceToken, ListInput{Name: "secret", Private: true})
	require.Equal(t, http.StatusCreated, w.Code)
	var list ListResponse
	decodeJSON(t, w, &list)

	feedPath := fmt.Sprintf("/api/v1/lists/%d/feed", list.ID)

	w = doRequest(t, router, http.MethodGet, feedPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodGet, feedPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/lists/%d/members", list.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
