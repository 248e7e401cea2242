package internal

const COOKIE_ACCESS_TOKEN_NAME = "access_token"
