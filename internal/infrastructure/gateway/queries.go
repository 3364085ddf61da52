package gateway

const getRoomsQuery = `query GetRooms {
  getRooms {
    id
    roomNumber
    roomImage
    events {
      id
      eventStartTime
      eventEndTime
      user {
        id
        email
      }
    }
  }
}`

const meQuery = `query Me {
  me {
    id
    email
    events {
      id
      eventStartTime
      roomId {
        id
        roomNumber
      }
    }
  }
}`

const createEventMutation = `mutation CreateEvent($eventName: String, $eventStartTime: String, $roomId: String) {
  createEvent(eventName: $eventName, eventStartTime: $eventStartTime, roomId: $roomId) {
    id
  }
}`

const deleteEventMutation = `mutation DeleteEvent($eventId: ID) {
  deleteEvent(eventId: $eventId) {
    message
  }
}`

const loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    user {
      id
      email
    }
    token
  }
}`

const signupMutation = `mutation Signup($email: String!, $password: String!) {
  signup(email: $email, password: $password) {
    user {
      id
      email
    }
    token
  }
}`
